package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopStageHooks{}
	s.OnStageStart(ctx, "unify")
	s.OnStageComplete(ctx, "unify", 8000, time.Second, nil)

	l := NoopLookupHooks{}
	l.OnLookup(ctx, "Q33", true)
	l.OnLookupFailure(ctx, "Q33", errors.New("boom"))
	l.OnFlush(ctx, 20)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Stage().(NoopStageHooks); !ok {
		t.Error("Stage() should return NoopStageHooks by default")
	}
	if _, ok := Lookup().(NoopLookupHooks); !ok {
		t.Error("Lookup() should return NoopLookupHooks by default")
	}

	counter := &LookupCounter{}
	SetLookupHooks(counter)
	if Lookup() != counter {
		t.Error("SetLookupHooks should set custom hooks")
	}

	SetLookupHooks(nil)
	if Lookup() != counter {
		t.Error("SetLookupHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Lookup().(NoopLookupHooks); !ok {
		t.Error("Reset() should restore NoopLookupHooks")
	}
}

func TestLookupCounter(t *testing.T) {
	ctx := context.Background()
	c := &LookupCounter{}

	c.OnLookup(ctx, "Q1", true)
	c.OnLookup(ctx, "Q2", false)
	c.OnLookup(ctx, "Q3", false)
	c.OnLookupFailure(ctx, "Q3", errors.New("timeout"))
	c.OnFlush(ctx, 3)

	hits, misses, failures, flushes := c.Snapshot()
	if hits != 1 || misses != 2 || failures != 1 || flushes != 1 {
		t.Errorf("Snapshot() = %d, %d, %d, %d; want 1, 2, 1, 1", hits, misses, failures, flushes)
	}
}
