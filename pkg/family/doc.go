// Package family resolves language-family genealogy.
//
// Resolution has two steps:
//
//  1. Climb: starting from a seed node, repeatedly ask a [Lookup] for the
//     node's parents, pick one, and append it to the chain. The climb stops
//     when there are no parents, when the picked parent was already seen
//     (a cycle) or at a fixed maximum depth.
//  2. Classify: drop generic taxonomic nodes ("language", "language
//     family", ...) from each chain and reduce what remains to three
//     levels: macro (nearest), super-macro (highest node shared by several
//     chains) and ultimate (highest).
//
// Two lookups are provided. [TableLookup] answers from the Wiktionary
// family module, where every family declares one parent. [RemoteLookup]
// asks Wikidata and memoizes the answers in a cache.Store; a failed remote
// call counts as "no parents" and is logged, never fatal.
package family
