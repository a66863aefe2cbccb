package family

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClimb_FollowsGreatestParent(t *testing.T) {
	l := StaticLookup{
		"Q1": {"Q2", "Q9"},
		"Q9": {"Q10"},
		"Q2": {"Q3"},
	}
	assert.Equal(t, []string{"Q9", "Q10"}, Climb(context.Background(), "Q1", l, 0))
}

func TestClimb_StopsOnCycle(t *testing.T) {
	l := StaticLookup{
		"A": {"B"},
		"B": {"A"},
	}
	// The seed is not pre-marked, so A appears once before the repeat.
	assert.Equal(t, []string{"B", "A"}, Climb(context.Background(), "A", l, 0))
}

func TestClimb_DepthBound(t *testing.T) {
	l := StaticLookup{}
	prev := "n0"
	for _, n := range []string{"n1", "n2", "n3", "n4", "n5"} {
		l[prev] = []string{n}
		prev = n
	}
	assert.Len(t, Climb(context.Background(), "n0", l, 3), 3)
	assert.Len(t, Climb(context.Background(), "n0", l, 20), 5)
}

func TestClimb_NoParents(t *testing.T) {
	got := Climb(context.Background(), "Q1", StaticLookup{}, 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClimb_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, Climb(ctx, "A", StaticLookup{"A": {"B"}}, 0))
}

func TestTableLookup(t *testing.T) {
	table := familyTable()
	l := TableLookup{Table: table}

	assert.Equal(t, []string{"urj"}, l.Parents(context.Background(), "urj-fin"))
	assert.Empty(t, l.Parents(context.Background(), "urj"))
	assert.Empty(t, l.Parents(context.Background(), "missing"))

	chain := Climb(context.Background(), "fiu-fin", l, 0)
	assert.Equal(t, []string{"urj-fin", "urj"}, chain)
}
