package family

import (
	"context"
	"sort"
)

// DefaultMaxDepth bounds the length of a parent chain.
const DefaultMaxDepth = 20

// Climb walks parents from seed and returns the chain of visited ancestors,
// nearest first. The seed itself is not in the chain. When a node has
// several parents the lexically greatest is followed.
//
// The climb ends when a node has no parents, when the chosen parent is
// already in the chain, after maxDepth steps, or when ctx is done.
func Climb(ctx context.Context, seed string, l Lookup, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	chain := []string{}
	visited := make(map[string]bool)
	current := seed
	for len(chain) < maxDepth && ctx.Err() == nil {
		next, ok := pick(l.Parents(ctx, current))
		if !ok || visited[next] {
			break
		}
		visited[next] = true
		chain = append(chain, next)
		current = next
	}
	return chain
}

// pick chooses the lexically greatest non-empty candidate.
func pick(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	sorted := append([]string(nil), candidates...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	if sorted[0] == "" {
		return "", false
	}
	return sorted[0], true
}
