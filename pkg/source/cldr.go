package source

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseLikelySubtags parses CLDR likelySubtags.json. Both the full
// supplemental document and a flat {tag: likely} object are accepted.
// Underscore separators are normalized to hyphens in keys and values.
func ParseLikelySubtags(data []byte) (map[string]string, error) {
	var doc struct {
		Supplemental *struct {
			LikelySubtags map[string]string `json:"likelySubtags"`
		} `json:"supplemental"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cldr likely subtags: %w", err)
	}

	raw := map[string]string{}
	if doc.Supplemental != nil {
		raw = doc.Supplemental.LikelySubtags
	} else {
		var flat map[string]json.RawMessage
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, fmt.Errorf("parse cldr likely subtags: %w", err)
		}
		for k, v := range flat {
			var s string
			if json.Unmarshal(v, &s) == nil {
				raw[k] = s
			}
		}
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[strings.ReplaceAll(k, "_", "-")] = strings.ReplaceAll(v, "_", "-")
	}
	return out, nil
}

// SplitLikely splits a likely-subtags value into its segments.
func SplitLikely(tag string) []string {
	if tag == "" {
		return nil
	}
	return strings.Split(tag, "-")
}
