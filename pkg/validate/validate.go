package validate

import (
	stderrors "errors"

	"golang.org/x/text/language"

	"github.com/lahtis/glfm/pkg/derive"
	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/fallback"
	glfm "github.com/lahtis/glfm/pkg/language"
)

// Validator is a named catalog check.
type Validator struct {
	Name  string
	Check func(c glfm.Catalog) errors.List
}

// All lists every validator, in report order.
var All = []Validator{
	{Name: "bcp47", Check: BCP47},
	{Name: "iso", Check: ISO},
	{Name: "fallback", Check: fallback.Validate},
	{Name: "scripts", Check: Scripts},
	{Name: "glottolog", Check: Glottolog},
	{Name: "pos_stats", Check: POSStats},
}

// ByName returns the validators with the given names. Unknown names are
// reported as INVALID_INPUT.
func ByName(names ...string) ([]Validator, error) {
	if len(names) == 0 {
		return All, nil
	}
	index := make(map[string]Validator, len(All))
	for _, v := range All {
		index[v.Name] = v
	}
	out := make([]Validator, 0, len(names))
	for _, n := range names {
		v, ok := index[n]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown validator %q", n)
		}
		out = append(out, v)
	}
	return out, nil
}

// BCP47 checks every tag against the catalog tag pattern and for
// well-formedness. Well-formed tags with subtags unknown to the registry
// (most ISO 639-3 codes) are accepted.
func BCP47(c glfm.Catalog) errors.List {
	var diags errors.List
	for _, code := range c.Codes() {
		tag := c[code].BCP47
		if !derive.TagPattern.MatchString(tag) {
			diags.Add(errors.ErrCodeInvalidBCP47, code, "tag %q does not match %s", tag, derive.TagPattern)
			continue
		}
		if _, err := language.Parse(tag); err != nil {
			var ve language.ValueError
			if !stderrors.As(err, &ve) {
				diags.Add(errors.ErrCodeInvalidBCP47, code, "tag %q is not well-formed: %v", tag, err)
			}
		}
	}
	return diags
}

// ISO checks identifier lengths and that no record is both a language and
// a family.
func ISO(c glfm.Catalog) errors.List {
	var diags errors.List
	for _, code := range c.Codes() {
		r := c[code]
		for _, f := range []struct {
			name, value string
			want        int
		}{
			{"iso639_1", r.ISO639_1, 2},
			{"iso639_2B", r.ISO639_2B, 3},
			{"iso639_2T", r.ISO639_2T, 3},
			{"iso639_3", r.ISO639_3, 3},
			{"iso639_5", r.ISO639_5, 3},
		} {
			if f.value != "" && len(f.value) != f.want {
				diags.Add(errors.ErrCodeInvalidISOLength, code, "%s %q must have %d letters", f.name, f.value, f.want)
			}
		}
		if r.ISO639_3 != "" && r.ISO639_5 != "" {
			diags.Add(errors.ErrCodeFamilyRoleConflict, code, "has both iso639_3 %q and iso639_5 %q", r.ISO639_3, r.ISO639_5)
		}
	}
	return diags
}

// Scripts checks the default and written scripts.
func Scripts(c glfm.Catalog) errors.List {
	var diags errors.List
	for _, code := range c.Codes() {
		r := c[code]
		if glfm.IsUnknown(r.DefaultScript) {
			diags.Add(errors.ErrCodeInvalidScript, code, "default_script is %q", r.DefaultScript)
		}
		for _, s := range r.WrittenScripts {
			if glfm.IsUnknown(s) {
				diags.Add(errors.ErrCodeInvalidScript, code, "written_scripts contains %q", s)
			}
		}
		if r.Written && !r.HasScript(r.DefaultScript) {
			diags.Add(errors.ErrCodeScriptNotWritten, code, "default_script %q not in written_scripts %v", r.DefaultScript, r.WrittenScripts)
		}
	}
	return diags
}

// Macroareas are the Glottolog macroareas.
var Macroareas = map[string]bool{
	"Africa":        true,
	"Eurasia":       true,
	"Australia":     true,
	"Papunesia":     true,
	"North America": true,
	"South America": true,
	"Antarctica":    true,
}

// Glottolog checks macroareas and coordinates.
func Glottolog(c glfm.Catalog) errors.List {
	var diags errors.List
	for _, code := range c.Codes() {
		g := c[code].Glottolog
		if g == nil {
			continue
		}
		if g.Macroarea != "" && !Macroareas[g.Macroarea] {
			diags.Add(errors.ErrCodeInvalidGlottolog, code, "invalid macroarea %q", g.Macroarea)
		}
		if g.Latitude != nil && (*g.Latitude < -90 || *g.Latitude > 90) {
			diags.Add(errors.ErrCodeInvalidGlottolog, code, "latitude out of range (%g)", *g.Latitude)
		}
		if g.Longitude != nil && (*g.Longitude < -180 || *g.Longitude > 180) {
			diags.Add(errors.ErrCodeInvalidGlottolog, code, "longitude out of range (%g)", *g.Longitude)
		}
	}
	return diags
}

// POSStats checks that every part-of-speech count is non-negative.
func POSStats(c glfm.Catalog) errors.List {
	var diags errors.List
	for _, code := range c.Codes() {
		stats := c[code].PosStats
		for _, tag := range sortedKeys(stats) {
			if n := stats[tag]; n < 0 {
				diags.Add(errors.ErrCodeInvalidPOSStats, code, "POS %q has negative count (%d)", tag, n)
			}
		}
	}
	return diags
}
