package store

import (
	"strings"
	"sync"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

// MemoryStore is a process-local backing store. It backs sessions that run
// without a cache file and most tests.
type MemoryStore struct {
	maxBytes int

	mu      sync.Mutex
	entries map[string][]byte
	size    int
}

// NewMemoryStore creates an empty in-memory store. maxBytes bounds the total
// stored bytes; zero means no bound.
func NewMemoryStore(maxBytes int) *MemoryStore {
	return &MemoryStore{
		maxBytes: maxBytes,
		entries:  map[string][]byte{},
	}
}

// Get returns the stored value and whether the key was present.
func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Set stores a copy of value under key. It fails with
// domain.ErrStoreQuotaExceeded when the write would exceed the byte quota.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.size - len(s.entries[key]) + len(value)
	if s.maxBytes > 0 && next > s.maxBytes {
		err := zerr.With(zerr.Wrap(domain.ErrStoreQuotaExceeded, "rejecting write"), "size", next)
		return zerr.With(err, "max", s.maxBytes)
	}

	s.entries[key] = append([]byte(nil), value...)
	s.size = next
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.size -= len(s.entries[key])
	delete(s.entries, key)
	return nil
}

// Keys enumerates the stored keys with the given prefix.
func (s *MemoryStore) Keys(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
