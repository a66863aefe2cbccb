package source

import (
	"encoding/json"
	"fmt"
)

// ParseUralic parses the list of languages supported by UralicNLP, given
// either as a JSON list or as {"languages": [...]}.
func ParseUralic(data []byte) (map[string]bool, error) {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		var wrapped struct {
			Languages []string `json:"languages"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parse uralic languages: %w", err)
		}
		list = wrapped.Languages
	}
	out := make(map[string]bool, len(list))
	for _, code := range list {
		out[code] = true
	}
	return out, nil
}
