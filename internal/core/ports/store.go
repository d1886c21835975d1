package ports

// BackingStore is a synchronous string-keyed byte store backing the lookup
// cache. Implementations have a finite quota and may reject writes; the
// cache treats every error as a miss and never surfaces them.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BackingStore interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Keys enumerates the stored keys with the given prefix.
	Keys(prefix string) ([]string, error)
}
