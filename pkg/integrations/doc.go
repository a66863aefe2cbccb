// Package integrations provides HTTP clients for the remote data sources
// GLFM consults.
//
// # Overview
//
// Each remote source has its own subpackage:
//
//   - [wikidata]: genealogy edges, label search and entity labels
//   - [cldr]: download of the CLDR likely-subtags table
//
// # Shared Infrastructure
//
// [Client] wraps net/http with a request timeout, default headers (a
// descriptive User-Agent is required by Wikimedia) and an optional
// [httputil.Throttle] that spaces calls by a fixed delay. Status codes are
// mapped onto [ErrNotFound] and [ErrNetwork]. Nothing is retried: callers
// decide whether a failure is fatal.
package integrations
