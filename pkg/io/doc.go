// Package io reads and writes the persisted artifacts of a run: the unified
// catalog, the family maps and the parent chains.
//
// # Files
//
// The catalog is one JSON object keyed by language code:
//
//	{
//	  "fin": {"id": "fin", "name": "Finnish", "bcp47": "fi-Latn-FI", ...},
//	  ...
//	}
//
// A family run writes five files into one directory:
//
//   - code_to_parent_chain.json: code → ordered ancestor ids
//   - code_to_macrofamily.json: code → {qid, label}
//   - code_to_super_macrofamily.json: code → {qid, label}
//   - code_to_ultimate_macrofamily.json: code → {qid, label}
//   - code_to_full_family_map.json: code → full lineage
//
// Every level is persisted on its own so a later run can reclassify from
// the chains without climbing again.
//
// # Determinism
//
// Maps are encoded with sorted keys and a fixed indent, so unchanged inputs
// produce byte-identical files. Files are written to a temporary sibling and
// renamed into place; a reader never sees a half-written artifact.
package io
