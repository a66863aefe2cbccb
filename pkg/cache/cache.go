// Package cache provides the key/value stores that memoize genealogy
// lookups between runs.
//
// A [Store] maps string keys to JSON-encodable values. Writes are
// append-only in practice: a resolver never deletes an entry, it only adds
// or overwrites one. Stores that buffer writes persist them on [Store.Flush];
// callers flush periodically during long runs and always before exit, so an
// interrupted run keeps most of its work.
//
// Implementations:
//   - [FileStore]: one JSON document on disk, loaded on open
//   - [RedisStore]: one Redis hash per namespace
//   - [NullStore]: stores nothing
package cache

import "context"

// Store is a string-keyed store of JSON-encodable values.
type Store interface {
	// Get decodes the value stored under key into v. It reports false
	// when key is absent.
	Get(ctx context.Context, key string, v any) (bool, error)

	// Set stores v under key.
	Set(ctx context.Context, key string, v any) error

	// Flush persists buffered writes.
	Flush(ctx context.Context) error

	// Close flushes and releases the store.
	Close() error
}

// Ranger is implemented by stores that can enumerate their entries. fn
// receives each key with a decoder for its value; returning an error stops
// the iteration.
type Ranger interface {
	Range(ctx context.Context, fn func(key string, decode func(v any) error) error) error
}

// Range enumerates s when it implements [Ranger] and reports false otherwise.
func Range(ctx context.Context, s Store, fn func(key string, decode func(v any) error) error) (bool, error) {
	r, ok := s.(Ranger)
	if !ok {
		return false, nil
	}
	return true, r.Range(ctx, fn)
}
