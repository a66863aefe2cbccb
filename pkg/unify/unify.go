// Package unify merges the loaded sources into catalog records.
//
// Field precedence:
//   - name: dictionary source name, else ISO name, else the code
//   - official_name: dictionary source official name, else name
//   - ISO identifiers: ISO tables only
//   - written, written_scripts, glottocode, family: written-language source only
//   - default_script, default_region, bcp47: see package derive
//   - fallback: see package fallback
package unify

import (
	"github.com/lahtis/glfm/pkg/derive"
	"github.com/lahtis/glfm/pkg/fallback"
	"github.com/lahtis/glfm/pkg/language"
	"github.com/lahtis/glfm/pkg/source"
)

// Record builds the catalog record of code.
func Record(code string, set *source.Set) *language.Record {
	in := derive.NewInput(code, set)
	tags := derive.Derive(in)

	r := &language.Record{
		ID:            code,
		Name:          firstNonEmpty(in.Lexical.Name, in.ISO.Name, code),
		ISO639_1:      in.ISO.ISO639_1,
		ISO639_2B:     in.ISO.ISO639_2B,
		ISO639_2T:     in.ISO.ISO639_2T,
		ISO639_3:      in.ISO.ISO639_3,
		ISO639_5:      in.ISO.ISO639_5,
		DefaultScript: tags.Script.Value,
		DefaultRegion: tags.Region.Value,
		BCP47:         tags.BCP47,
		Fallback:      fallback.Decide(code, in.ISO, in.Lexical),
		UralicNLP:     set.Uralic[code],
		Written:       in.Written.Written,
		Glottocode:    in.Written.Glottocode,
		Family:        in.Written.Family,
		PosStats:      posStats(set.PosStats[code]),
	}
	r.OfficialName = firstNonEmpty(in.Lexical.OfficialName, r.Name)
	r.WrittenScripts = writtenScripts(in.Written, r.DefaultScript)

	if g, ok := set.Glottolog[code]; ok {
		r.Glottolog = &g
	}
	return r
}

// Catalog builds a record for every ISO code in set.
func Catalog(set *source.Set) language.Catalog {
	c := make(language.Catalog, len(set.ISO))
	for code := range set.ISO {
		c[code] = Record(code, set)
	}
	return c
}

// writtenScripts returns the cleaned written scripts. A written language
// whose source lists no usable script gets its default script.
func writtenScripts(w source.Attributes, defaultScript string) []string {
	scripts := source.CleanScripts(w.Scripts)
	if len(scripts) == 0 && w.Written && !language.IsUnknown(defaultScript) {
		scripts = []string{defaultScript}
	}
	if scripts == nil {
		scripts = []string{}
	}
	return scripts
}

func posStats(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for pos, n := range src {
		out[pos] = n
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
