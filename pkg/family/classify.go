package family

import (
	"context"
	"sort"

	"github.com/lahtis/glfm/pkg/language"
)

// DefaultGeneric lists the Wikidata classes too broad to name a family:
// language family, language, linguistic entity, linguistic unit and
// grouping.
var DefaultGeneric = []string{
	"Q20162172",
	"Q34770",
	"Q17376908",
	"Q7048977",
	"Q18205125",
}

// Classifier reduces parent chains to classification levels.
type Classifier struct {
	Generic map[string]bool
}

// NewClassifier creates a classifier ignoring the given generic nodes.
func NewClassifier(generic []string) *Classifier {
	g := make(map[string]bool, len(generic))
	for _, id := range generic {
		g[id] = true
	}
	return &Classifier{Generic: g}
}

// Ancestors returns the non-generic nodes of chain, order kept.
func (c *Classifier) Ancestors(chain []string) []string {
	out := []string{}
	for _, n := range chain {
		if !c.Generic[n] {
			out = append(out, n)
		}
	}
	return out
}

// Classify builds the lineage of every code in chains. seeds maps a code
// to the node its chain was climbed from and may be missing entries.
//
// The super-macro level depends on every chain at once: a node counts as
// shared when it appears in the ancestors of more than one code.
func (c *Classifier) Classify(ctx context.Context, seeds map[string]string, chains map[string][]string, labels Labeler) language.FamilyMap {
	ancestors := make(map[string][]string, len(chains))
	freq := make(map[string]int)
	for code, chain := range chains {
		anc := c.Ancestors(chain)
		ancestors[code] = anc
		for _, n := range anc {
			freq[n]++
		}
	}

	label := func(id string) (string, bool) {
		if id == "" || labels == nil {
			return "", false
		}
		return labels.Label(ctx, id)
	}
	node := func(id string) language.Node {
		l, ok := label(id)
		if !ok {
			l = language.UnknownLabel
		}
		return language.Node{ID: id, Label: l}
	}

	codes := make([]string, 0, len(chains))
	for code := range chains {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make(language.FamilyMap, len(codes))
	for _, code := range codes {
		anc := ancestors[code]
		seed := seeds[code]

		l := language.Lineage{
			Seed:         seed,
			ParentChain:  append([]string{}, chains[code]...),
			AllAncestors: make([]language.Node, 0, len(anc)),
		}
		for _, n := range anc {
			l.AllAncestors = append(l.AllAncestors, node(n))
		}

		if len(anc) > 0 {
			l.Macro = node(anc[0])
		} else {
			l.Macro = node("")
		}

		l.SuperMacro = node(superMacro(anc, seed, freq, label))

		switch {
		case len(anc) > 0:
			l.UltimateMacro = node(anc[len(anc)-1])
		case l.SuperMacro.ID != "":
			l.UltimateMacro = l.SuperMacro
		default:
			l.UltimateMacro = language.Node{ID: language.UltimateUnknown, Label: language.UnknownLabel}
		}

		out[code] = l
	}
	return out
}

// superMacro picks, from the top of anc down, the first node that is shared
// by several codes and labelled; then the first labelled node; then the
// nearest ancestor; then the seed.
func superMacro(anc []string, seed string, freq map[string]int, label func(string) (string, bool)) string {
	for i := len(anc) - 1; i >= 0; i-- {
		if freq[anc[i]] > 1 {
			if _, ok := label(anc[i]); ok {
				return anc[i]
			}
		}
	}
	for i := len(anc) - 1; i >= 0; i-- {
		if _, ok := label(anc[i]); ok {
			return anc[i]
		}
	}
	if len(anc) > 0 {
		return anc[0]
	}
	return seed
}
