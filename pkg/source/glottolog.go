package source

import (
	"encoding/json"
	"fmt"

	"github.com/lahtis/glfm/pkg/language"
)

type glottologEntry struct {
	ID        string     `json:"id"`
	ISO639_3  optString  `json:"iso639_3"`
	Macroarea stringList `json:"macroarea"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Lineage   []string   `json:"lineage"`
	Family    optString  `json:"family"`
}

func (e glottologEntry) normalize() language.Glottolog {
	g := language.Glottolog{
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Lineage:   e.Lineage,
		Family:    string(e.Family),
	}
	if len(e.Macroarea) > 0 {
		g.Macroarea = e.Macroarea[0]
	}
	return g
}

// ParseGlottolog parses Glottolog attributes. Accepted shapes are an object
// keyed by ISO 639-3 code and a languoid list whose entries carry "iso639_3"
// (entries without one are skipped).
func ParseGlottolog(data []byte) (map[string]language.Glottolog, error) {
	var list []glottologEntry
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(map[string]language.Glottolog, len(list))
		for _, e := range list {
			if code := string(e.ISO639_3); code != "" {
				out[code] = e.normalize()
			}
		}
		return out, nil
	}

	var raw map[string]glottologEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse glottolog: %w", err)
	}
	out := make(map[string]language.Glottolog, len(raw))
	for code, e := range raw {
		out[code] = e.normalize()
	}
	return out, nil
}
