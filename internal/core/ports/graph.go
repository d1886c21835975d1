// Package ports defines the interfaces between the core and its external
// collaborators.
package ports

import (
	"context"

	"go.trai.ch/grove/internal/core/domain"
)

// GraphClient is the narrow interface to the Microsoft Graph collaborator.
// Token acquisition, transport and pagination are entirely its concern; the
// core only sees typed entities and classified errors.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph.go -destination=mocks/mock_graph.go -package=mocks
type GraphClient interface {
	// FetchUsers lists users, optionally filtered by a free-text search.
	FetchUsers(ctx context.Context, search string) ([]domain.User, error)

	// FetchGroups lists groups, optionally filtered by a free-text search.
	FetchGroups(ctx context.Context, search string) ([]domain.Group, error)

	// FetchDevices lists devices, optionally filtered by a free-text search.
	FetchDevices(ctx context.Context, search string) ([]domain.Device, error)

	// FetchUserGroups lists the groups a user is a member of.
	FetchUserGroups(ctx context.Context, userID string) ([]domain.Group, error)

	// FetchGroupMembers lists a group's direct members. Members may be
	// users, groups or devices.
	FetchGroupMembers(ctx context.Context, groupID string) ([]domain.Entity, error)

	// FetchGroupMemberOf lists the groups a group belongs to.
	FetchGroupMemberOf(ctx context.Context, groupID string) ([]domain.Group, error)

	// FetchDeviceGroups lists the groups a device is a member of.
	FetchDeviceGroups(ctx context.Context, deviceID string) ([]domain.Group, error)

	// AddMember adds an entity to a group. Returns domain.ErrAlreadyMember
	// when the edge already exists.
	AddMember(ctx context.Context, groupID, entityID string) error

	// RemoveMember removes an entity from a group.
	RemoveMember(ctx context.Context, groupID, entityID string) error
}

// TokenProvider supplies the bearer token for Graph requests. Refresh and
// caching of tokens are the provider's concern.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
