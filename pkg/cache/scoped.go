package cache

import (
	"context"
	"strings"
)

// Scoped prefixes every key of an underlying store, so several mappings
// can share one backend (one Redis instance, for example).
type Scoped struct {
	inner  Store
	prefix string
}

// NewScoped wraps inner with prefix. A nil inner store is replaced by a
// NullStore.
func NewScoped(inner Store, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullStore()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get reads prefix+key from the inner store.
func (s *Scoped) Get(ctx context.Context, key string, v any) (bool, error) {
	return s.inner.Get(ctx, s.prefix+key, v)
}

// Set writes prefix+key to the inner store.
func (s *Scoped) Set(ctx context.Context, key string, v any) error {
	return s.inner.Set(ctx, s.prefix+key, v)
}

// Range calls fn for the inner entries under the prefix, with the prefix
// removed. An inner store that cannot be enumerated yields nothing.
func (s *Scoped) Range(ctx context.Context, fn func(key string, decode func(v any) error) error) error {
	_, err := Range(ctx, s.inner, func(key string, decode func(v any) error) error {
		rest, ok := strings.CutPrefix(key, s.prefix)
		if !ok {
			return nil
		}
		return fn(rest, decode)
	})
	return err
}

// Flush flushes the inner store.
func (s *Scoped) Flush(ctx context.Context) error { return s.inner.Flush(ctx) }

// Close is a no-op; the owner of the inner store closes it.
func (s *Scoped) Close() error { return nil }

var (
	_ Store  = (*Scoped)(nil)
	_ Ranger = (*Scoped)(nil)
)
