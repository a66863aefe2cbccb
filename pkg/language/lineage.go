package language

// UnknownLabel is shown for a family node whose display label cannot be resolved.
const UnknownLabel = "(unknown)"

// UltimateUnknown is the ultimate family id used when a code has no genealogy at all.
const UltimateUnknown = "Unknown"

// Node is a family node identifier paired with its display label.
// For the remote strategy ID is a Wikidata QID; for the table-driven
// strategy it is a family code.
type Node struct {
	ID    string `json:"qid"`
	Label string `json:"label"`
}

// Lineage is the classified genealogy of one code.
type Lineage struct {
	Seed          string   `json:"seed,omitempty"`
	Macro         Node     `json:"macro"`
	SuperMacro    Node     `json:"super_macro"`
	UltimateMacro Node     `json:"ultimate_macro"`
	AllAncestors  []Node   `json:"all_ancestors"`
	ParentChain   []string `json:"parent_chain"`
}

// FamilyMap maps a code to its lineage.
type FamilyMap map[string]Lineage

// Level projects one classification level of the map into a code→node map,
// the shape of the per-level output files.
func (m FamilyMap) Level(pick func(Lineage) Node) map[string]Node {
	out := make(map[string]Node, len(m))
	for code, l := range m {
		out[code] = pick(l)
	}
	return out
}

// Chains returns the code→parent chain projection of the map.
func (m FamilyMap) Chains() map[string][]string {
	out := make(map[string][]string, len(m))
	for code, l := range m {
		out[code] = l.ParentChain
	}
	return out
}
