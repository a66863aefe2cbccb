package cache

import "context"

// NullStore is a no-op store that never retains anything.
// Useful for testing or when caching should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return NullStore{}
}

// Get always reports a miss.
func (NullStore) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set does nothing.
func (NullStore) Set(context.Context, string, any) error { return nil }

// Flush does nothing.
func (NullStore) Flush(context.Context) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }

// Ensure NullStore implements Store.
var _ Store = NullStore{}
