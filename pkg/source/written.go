package source

import (
	"encoding/json"
	"fmt"
)

type writtenEntry struct {
	Written    bool       `json:"written"`
	Scripts    stringList `json:"scripts"`
	Glottocode optString  `json:"glottocode"`
	Family     optString  `json:"family"`
}

// ParseWritten parses the written-language metadata, keyed by code.
// UNKNOWN and empty scripts are removed.
func ParseWritten(data []byte) (Table, error) {
	var raw map[string]writtenEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse written languages: %w", err)
	}
	out := make(Table, len(raw))
	for code, e := range raw {
		out[code] = Attributes{
			Written:    e.Written,
			Scripts:    CleanScripts(e.Scripts),
			Glottocode: string(e.Glottocode),
			Family:     string(e.Family),
		}
	}
	return out, nil
}
