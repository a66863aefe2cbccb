// Package source loads the raw language data files GLFM merges and
// normalizes each of them into a canonical shape at the edge.
//
// Every adapter accepts the loose shapes the upstream files come in
// (a field that is a string in one dump and a list in another, a list of
// codes or an object keyed by code) and returns plain Go values, so the
// derivation and unification code never inspects raw JSON.
//
// Sources:
//   - ISO 639-3 code table, name index and macrolanguage mappings (TSV)
//   - ISO 639-5 families (SKOS RDF/XML or JSON)
//   - CLDR likely subtags (JSON)
//   - Wiktionary language metadata, the dictionary source (JSON)
//   - Written-language metadata (JSON)
//   - Glottolog attributes (JSON)
//   - Part-of-speech statistics (JSON, or built from a Wiktextract dump)
//   - Uralic language list (JSON)
//   - Wiktionary family module (Lua or JSON)
//
// Only the ISO 639-3 table is required. A missing optional file degrades to
// an empty table.
package source
