// Package wikidata provides a client for the Wikidata action API, used to
// climb language-family genealogy.
//
// Three endpoints are used:
//
//   - wbgetclaims: the parents of an entity through the "subclass of"
//     (P279) and "part of" (P361) properties
//   - wbsearchentities: the entity id for a family label
//   - wbgetentities: English display labels for entity ids
//
// The client does no caching of its own; the family resolver memoizes
// results in a cache.Store.
package wikidata
