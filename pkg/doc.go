// Package pkg provides the core libraries of GLFM, the Global Language
// Family Map.
//
// # Overview
//
// GLFM merges several language registries into one record per ISO 639
// code and resolves the genealogy of every language family. The pkg
// directory is organized into these areas:
//
//  1. [language] - Catalog records, lineages and family maps
//  2. [source] - Loaders for the raw registries (ISO 639, CLDR, Wiktionary, Glottolog)
//  3. [derive], [unify], [fallback] - Field derivation, record merging and fallback chains
//  4. [family] - Genealogy climbing and family classification
//  5. [validate] - Catalog validators and the validation report
//  6. [pipeline] - Orchestration (load → unify → validate → write)
//  7. [cache], [integrations] - Lookup caches and remote clients (Wikidata, CLDR)
//  8. [io], [server], [publish] - JSON artifacts, the read-only API and MongoDB upserts
//
// # Architecture
//
// The typical data flow:
//
//	raw source files
//	       ↓
//	  [source] package (load and normalize)
//	       ↓
//	  [unify] package (one record per code, BCP 47 tag, fallback)
//	       ↓
//	  unified_languages.json
//	       ↓
//	  [family] package (climb chains, classify levels)
//	       ↓
//	  code_to_*_family.json maps
//
// The glfm command in cmd/glfm drives these stages through [pipeline].
package pkg
