package domain

import "go.trai.ch/zerr"

var (
	// ErrDirectoryFetch is returned when the directory collaborator fails a
	// read. The wrapped error carries the endpoint and underlying cause.
	ErrDirectoryFetch = zerr.New("directory fetch failed")

	// ErrNotFound is returned when a referenced group or entity does not
	// exist in the directory.
	ErrNotFound = zerr.New("directory object not found")

	// ErrForbidden is returned when the caller's token lacks permission for
	// a mutation.
	ErrForbidden = zerr.New("insufficient permissions")

	// ErrAlreadyMember is returned by the collaborator when the entity is
	// already a member of the target group. The mutation coordinator
	// classifies it as success; it never surfaces to the UI layer.
	ErrAlreadyMember = zerr.New("entity is already a member of the group")

	// ErrMutationInProgress is returned when a membership edge is already
	// being mutated. Callers should not retry immediately.
	ErrMutationInProgress = zerr.New("membership mutation already in progress")

	// ErrGraphRequest is the catch-all for unclassified collaborator
	// failures; status code and response body travel as metadata.
	ErrGraphRequest = zerr.New("graph request failed")

	// ErrEntityNotFound is returned when an entity lookup by id or name
	// matches nothing in the directory listing.
	ErrEntityNotFound = zerr.New("no matching directory entity")

	// ErrNoRootSelected is returned when a tree operation runs before a
	// root entity has been selected.
	ErrNoRootSelected = zerr.New("no root entity selected")

	// ErrStoreQuotaExceeded is returned by the backing store when a write
	// would exceed the configured quota. The cache swallows it.
	ErrStoreQuotaExceeded = zerr.New("backing store quota exceeded")

	// ErrConfigInvalid is returned when grove.yaml exists but does not parse.
	ErrConfigInvalid = zerr.New("invalid configuration file")

	// ErrTokenMissing is returned when the token environment variable is
	// unset or empty.
	ErrTokenMissing = zerr.New("graph token not configured")
)
