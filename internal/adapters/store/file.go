// Package store provides the backing stores for the lookup cache: a
// JSON-file store that survives restarts and an in-memory store for tests
// and ephemeral sessions.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

const filePerm = 0o600
const dirPerm = 0o755

// FileStore persists all entries in a single JSON file. Writes go through
// a temp file and rename so a crash never leaves a torn store behind.
type FileStore struct {
	path     string
	maxBytes int

	mu      sync.Mutex
	entries map[string][]byte
}

// NewFileStore opens or creates the store file at path. maxBytes bounds the
// encoded size of the store; zero means no bound.
func NewFileStore(path string, maxBytes int) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		maxBytes: maxBytes,
		entries:  map[string][]byte{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, zerr.Wrap(err, "reading store file")
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		// A corrupt store file is abandoned rather than fatal; the cache
		// rebuilds itself from directory fetches.
		s.entries = map[string][]byte{}
	}
	return s, nil
}

// Get returns the stored value and whether the key was present.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// Set stores value under key and persists the store. It fails with
// domain.ErrStoreQuotaExceeded when the write would push the encoded store
// past its byte quota, leaving the previous contents intact.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[key]
	s.entries[key] = value

	data, err := json.Marshal(s.entries)
	if err == nil && s.maxBytes > 0 && len(data) > s.maxBytes {
		err = zerr.With(zerr.Wrap(domain.ErrStoreQuotaExceeded, "rejecting write"), "size", len(data))
		err = zerr.With(err, "max", s.maxBytes)
	}
	if err == nil {
		err = s.flush(data)
	}
	if err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and persists the store. Removing an absent key is a
// no-op.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)

	data, err := json.Marshal(s.entries)
	if err != nil {
		return zerr.Wrap(err, "encoding store")
	}
	return s.flush(data)
}

// Keys enumerates the stored keys with the given prefix.
func (s *FileStore) Keys(prefix string) ([]string, error) {
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

func (s *FileStore) flush(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return zerr.Wrap(err, "creating store directory")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return zerr.Wrap(err, "writing store file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.Wrap(err, "replacing store file")
	}
	return nil
}
