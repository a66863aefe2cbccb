// Package language defines the unified catalog record and the family
// lineage types produced by GLFM.
//
// A [Record] is the merged view of one language (ISO 639-3 individual
// language or macrolanguage) or one language family (ISO 639-5). Records
// are keyed by their code in a [Catalog]; the catalog serializes with keys
// in sorted order so repeated builds over the same inputs are byte-identical.
//
// A [Lineage] is the classification of a code's genealogy: the nearest
// non-generic family (macro), a widely shared upper family (super-macro) and
// the topmost non-generic family (ultimate).
package language
