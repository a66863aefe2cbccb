package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore keeps all entries of one mapping in memory and persists them as
// a single JSON object. Writes are buffered until Flush.
type FileStore struct {
	path string

	mu      sync.Mutex
	entries map[string]json.RawMessage
	dirty   bool
}

// OpenFileStore loads the store at path. A missing file yields an empty
// store; a corrupt file is an error so that a run never silently discards
// accumulated lookups.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, entries: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", path, err)
	}
	return s, nil
}

// Get retrieves a value from the store.
func (s *FileStore) Get(ctx context.Context, key string, v any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	return true, nil
}

// Set buffers a value.
func (s *FileStore) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[key] = raw
	s.dirty = true
	s.mu.Unlock()
	return nil
}

// Flush writes the store to disk if it changed since the last flush.
// The file is replaced atomically.
func (s *FileStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("write cache %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}

// Close flushes the store.
func (s *FileStore) Close() error {
	return s.Flush(context.Background())
}

// Len returns the number of entries.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Keys returns the stored keys in sorted order.
func (s *FileStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for every entry in key order.
func (s *FileStore) Range(ctx context.Context, fn func(key string, decode func(v any) error) error) error {
	for _, k := range s.Keys() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.mu.Lock()
		raw := s.entries[k]
		s.mu.Unlock()
		if err := fn(k, func(v any) error { return json.Unmarshal(raw, v) }); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
