package source

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	familyEntryRe = regexp.MustCompile(`m\["([^"]+)"\]\s*=\s*\{([^}]*)\}`)
	quotedRe      = regexp.MustCompile(`^"(.*)"$`)
)

// ParseFamilyModule parses the Wiktionary families data module, where each
// family is written as
//
//	m["urj"] = {
//		"Uralic",
//		1,
//		family = "qfa-not",
//	}
//
// The first positional string is the canonical name and the first
// positional number the Wikidata item. Named canonicalName and
// wikidata_item fields take precedence.
func ParseFamilyModule(text string) FamilyTable {
	out := make(FamilyTable)
	for _, m := range familyEntryRe.FindAllStringSubmatch(text, -1) {
		code, body := m[1], stripLuaComment(m[2])
		var e FamilyEntry
		var positional []string
		for _, part := range strings.Split(body, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key, val, named := strings.Cut(part, "=")
			if !named {
				positional = append(positional, part)
				continue
			}
			val = unquote(strings.TrimSpace(val))
			switch strings.TrimSpace(key) {
			case "canonicalName":
				e.CanonicalName = val
			case "family":
				e.Parent = val
			case "wikidata_item":
				e.WikidataItem = normalizeQID(val)
			}
		}
		for _, p := range positional {
			if q := quotedRe.FindStringSubmatch(p); q != nil {
				if e.CanonicalName == "" {
					e.CanonicalName = q[1]
				}
			} else if isDigits(p) && e.WikidataItem == "" {
				e.WikidataItem = normalizeQID(p)
			}
		}
		out[code] = e
	}
	return out
}

func stripLuaComment(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if idx := strings.Index(l, "--"); idx >= 0 {
			lines[i] = l[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func unquote(s string) string {
	if q := quotedRe.FindStringSubmatch(s); q != nil {
		return q[1]
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type familyJSON struct {
	CanonicalName optString `json:"canonicalName"`
	Family        optString `json:"family"`
	WikidataItem  optString `json:"wikidata_item"`
}

// ParseFamilyJSON parses the JSON rendering of the families module.
func ParseFamilyJSON(data []byte) (FamilyTable, error) {
	var raw map[string]familyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse wiktionary families: %w", err)
	}
	out := make(FamilyTable, len(raw))
	for code, e := range raw {
		out[code] = FamilyEntry{
			CanonicalName: string(e.CanonicalName),
			Parent:        string(e.Family),
			WikidataItem:  normalizeQID(string(e.WikidataItem)),
		}
	}
	return out, nil
}
