package family

import (
	"context"

	"github.com/lahtis/glfm/pkg/source"
)

// Labeler resolves the display label of a node.
type Labeler interface {
	Label(ctx context.Context, node string) (string, bool)
}

// TableLabeler labels Wiktionary family codes with their canonical names.
type TableLabeler struct {
	Table source.FamilyTable
}

// Label returns the canonical name of node.
func (t TableLabeler) Label(_ context.Context, node string) (string, bool) {
	e, ok := t.Table[node]
	if !ok || e.CanonicalName == "" {
		return "", false
	}
	return e.CanonicalName, true
}

// StaticLabeler labels nodes from a map.
type StaticLabeler map[string]string

// Label returns the mapped label of node.
func (s StaticLabeler) Label(_ context.Context, node string) (string, bool) {
	l, ok := s[node]
	return l, ok && l != ""
}
