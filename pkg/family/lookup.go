package family

import (
	"context"

	"github.com/lahtis/glfm/pkg/source"
)

// Lookup answers the parent nodes of a genealogy node. Implementations
// degrade failures to an empty result.
type Lookup interface {
	Parents(ctx context.Context, node string) []string
}

// TableLookup answers from the Wiktionary family module. Every family has
// at most one declared parent.
type TableLookup struct {
	Table source.FamilyTable
}

// Parents returns the declared parent of node, if any.
func (t TableLookup) Parents(_ context.Context, node string) []string {
	e, ok := t.Table[node]
	if !ok || e.Parent == "" || e.Parent == node {
		return nil
	}
	return []string{e.Parent}
}

// StaticLookup answers from an in-memory edge list.
type StaticLookup map[string][]string

// Parents returns the recorded parents of node.
func (s StaticLookup) Parents(_ context.Context, node string) []string {
	return s[node]
}
