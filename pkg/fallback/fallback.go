// Package fallback assigns and validates the fallback chain of catalog
// records.
//
// Every record names a fallback code. Following fallbacks from any record
// must reach a root (a record whose fallback is itself, or empty) without
// revisiting a code. Validate reports every record that breaks this.
package fallback

import (
	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/language"
	"github.com/lahtis/glfm/pkg/source"
)

// Decide picks the fallback of code: the dictionary source's explicit
// fallback, else the macrolanguage of an individual language, else the
// code itself.
func Decide(code string, iso source.ISOInfo, lexical source.Attributes) string {
	if lexical.Fallback != "" {
		return lexical.Fallback
	}
	if iso.Macrolanguage != "" && iso.Macrolanguage != code {
		return iso.Macrolanguage
	}
	return code
}

// Validate checks the fallback of every record in c and returns the
// diagnostics in code order.
//
//   - MISSING_FALLBACK: the fallback is empty.
//   - DANGLING_FALLBACK: the fallback is not a catalog code.
//   - FALLBACK_CYCLE: following the chain revisits a code; the diagnostic
//     names the first revisited code.
func Validate(c language.Catalog) errors.List {
	var diags errors.List
	for _, code := range c.Codes() {
		r := c[code]
		if r.Fallback == "" {
			diags.Add(errors.ErrCodeMissingFallback, code, "no fallback")
			continue
		}
		if _, ok := c[r.Fallback]; !ok {
			diags.Add(errors.ErrCodeDanglingFallback, code, "fallback %q is not in the catalog", r.Fallback)
			continue
		}
		if at, ok := findCycle(c, r.Fallback); ok {
			diags.Add(errors.ErrCodeFallbackCycle, code, "fallback chain revisits %q", at)
		}
	}
	return diags
}

// findCycle walks the chain from start and returns the first code seen twice.
// The walk stops at a root or at a fallback outside the catalog.
func findCycle(c language.Catalog, start string) (string, bool) {
	visited := make(map[string]bool)
	current := start
	for {
		if visited[current] {
			return current, true
		}
		visited[current] = true
		r, ok := c[current]
		if !ok {
			return "", false
		}
		next := r.Fallback
		if next == "" || next == current {
			return "", false
		}
		current = next
	}
}

// Chain returns the fallback path from code to its root, code first.
// The walk stops at a root, at a code outside the catalog or before
// revisiting a code.
func Chain(c language.Catalog, code string) []string {
	var chain []string
	visited := make(map[string]bool)
	current := code
	for {
		r, ok := c[current]
		if !ok || visited[current] {
			return chain
		}
		visited[current] = true
		chain = append(chain, current)
		if r.Fallback == "" || r.Fallback == current {
			return chain
		}
		current = r.Fallback
	}
}
