package source

import (
	"encoding/json"
	"fmt"
)

type lexicalEntry struct {
	Name          optString  `json:"name"`
	CanonicalName optString  `json:"canonicalName"`
	OfficialName  optString  `json:"official_name"`
	Scripts       stringList `json:"scripts"`
	Region        optString  `json:"region"`
	Fallback      optString  `json:"fallback"`
	Parent        optString  `json:"parent"`
	Family        optString  `json:"family"`
	WikidataItem  optString  `json:"wikidata_item"`
}

// ParseLexical parses the Wiktionary language metadata dump, keyed by code.
func ParseLexical(data []byte) (Table, error) {
	var raw map[string]lexicalEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse wiktionary languages: %w", err)
	}
	out := make(Table, len(raw))
	for code, e := range raw {
		name := string(e.Name)
		if name == "" {
			name = string(e.CanonicalName)
		}
		fallback := string(e.Fallback)
		if fallback == "" {
			fallback = string(e.Parent)
		}
		a := Attributes{
			Name:         name,
			OfficialName: string(e.OfficialName),
			Scripts:      CleanScripts(e.Scripts),
			Family:       string(e.Family),
			Fallback:     fallback,
			WikidataItem: normalizeQID(string(e.WikidataItem)),
		}
		if r := string(e.Region); r != "" {
			a.Region = NormalizeRegion(r)
		}
		out[code] = a
	}
	return out, nil
}

// normalizeQID turns a bare Wikidata number ("33") into its id form ("Q33").
func normalizeQID(s string) string {
	if s == "" {
		return ""
	}
	if s[0] >= '0' && s[0] <= '9' {
		return "Q" + s
	}
	return s
}
