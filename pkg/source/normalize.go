package source

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"

	"github.com/lahtis/glfm/pkg/language"
)

var scriptCaser = cases.Title(xlanguage.Und)

// NormalizeScript returns a script code in ISO 15924 casing ("latn" → "Latn").
// The UNKNOWN sentinel and empty values are returned as language.Unknown.
func NormalizeScript(s string) string {
	s = strings.TrimSpace(s)
	if language.IsUnknown(s) {
		return language.Unknown
	}
	return scriptCaser.String(s)
}

// NormalizeRegion upper-cases a region subtag. Numeric M.49 codes pass through.
func NormalizeRegion(s string) string {
	s = strings.TrimSpace(s)
	if language.IsUnknown(s) {
		return language.Unknown
	}
	return strings.ToUpper(s)
}

// CleanScripts normalizes scripts, drops entries that are not script
// subtags ("UNKNOWN", "fa-Arab", "polytonic") and removes duplicates while
// keeping the first occurrence order.
func CleanScripts(scripts []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range scripts {
		s = NormalizeScript(s)
		if !language.IsScript(s) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// stringList decodes either a JSON string or a JSON list of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one != "" {
			*l = stringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// optString decodes a JSON string, tolerating null and numbers.
type optString string

func (s *optString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = optString(strings.TrimSpace(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = optString(num.String())
		return nil
	}
	*s = ""
	return nil
}
