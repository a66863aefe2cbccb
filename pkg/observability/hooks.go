// Package observability provides hooks for metrics and tracing.
//
// Library packages emit events through the registered hooks; the command
// line registers an implementation at startup. Defaults are no-ops, so
// library code never needs a nil check and tests need no setup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStageHooks(&myStageHooks{})
//	    observability.SetLookupHooks(&myLookupHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Stage().OnStageStart(ctx, "unify")
//	// ... build the catalog ...
//	observability.Stage().OnStageComplete(ctx, "unify", records, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Stage Hooks
// =============================================================================

// StageHooks receives events from pipeline stages (load, unify, validate,
// climb, classify, write).
type StageHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, items int, duration time.Duration, err error)
}

// =============================================================================
// Lookup Hooks
// =============================================================================

// LookupHooks receives events from genealogy lookups.
type LookupHooks interface {
	// OnLookup records a parent lookup for node, answered from the cache or not.
	OnLookup(ctx context.Context, node string, cached bool)

	// OnLookupFailure records a remote lookup that failed and was treated as
	// "no parents".
	OnLookupFailure(ctx context.Context, node string, err error)

	// OnFlush records a cache flush.
	OnFlush(ctx context.Context, entries int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string)                              {}
func (NoopStageHooks) OnStageComplete(context.Context, string, int, time.Duration, error) {}

// NoopLookupHooks is a no-op implementation of LookupHooks.
type NoopLookupHooks struct{}

func (NoopLookupHooks) OnLookup(context.Context, string, bool)         {}
func (NoopLookupHooks) OnLookupFailure(context.Context, string, error) {}
func (NoopLookupHooks) OnFlush(context.Context, int)                   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	stageHooks  StageHooks  = NoopStageHooks{}
	lookupHooks LookupHooks = NoopLookupHooks{}
	hooksMu     sync.RWMutex
)

// SetStageHooks registers custom stage hooks.
// This should be called once at application startup.
func SetStageHooks(h StageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stageHooks = h
	}
}

// SetLookupHooks registers custom lookup hooks.
// This should be called once at application startup.
func SetLookupHooks(h LookupHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		lookupHooks = h
	}
}

// Stage returns the registered stage hooks.
func Stage() StageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stageHooks
}

// Lookup returns the registered lookup hooks.
func Lookup() LookupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lookupHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stageHooks = NoopStageHooks{}
	lookupHooks = NoopLookupHooks{}
}

// =============================================================================
// Counters
// =============================================================================

// LookupCounter is a LookupHooks implementation that counts events. The
// command line registers one to print a summary after a family run.
type LookupCounter struct {
	mu       sync.Mutex
	Hits     int
	Misses   int
	Failures int
	Flushes  int
}

func (c *LookupCounter) OnLookup(_ context.Context, _ string, cached bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached {
		c.Hits++
	} else {
		c.Misses++
	}
}

func (c *LookupCounter) OnLookupFailure(context.Context, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Failures++
}

func (c *LookupCounter) OnFlush(context.Context, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Flushes++
}

// Snapshot returns the current counts.
func (c *LookupCounter) Snapshot() (hits, misses, failures, flushes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Hits, c.Misses, c.Failures, c.Flushes
}
