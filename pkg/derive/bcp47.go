package derive

import (
	"regexp"
	"strings"

	"github.com/lahtis/glfm/pkg/language"
)

// TagPattern is the shape every emitted BCP-47 tag must have:
// language[-Script][-Region].
var TagPattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Z][a-z]{3})?(-([A-Z]{2}|[0-9]{3}))?$`)

// BCP47 assembles a tag from its parts. The base is the ISO 639-1 code when
// present, else code. script is appended unless empty or UNKNOWN; region is
// appended unless empty, UNKNOWN or "001".
func BCP47(code, iso639_1, script, region string) string {
	base := code
	if iso639_1 != "" {
		base = iso639_1
	}
	parts := []string{base}
	if !language.IsUnknown(script) {
		parts = append(parts, strings.TrimSpace(script))
	}
	if !language.IsUnknown(region) && strings.TrimSpace(region) != language.RegionWorld {
		parts = append(parts, strings.TrimSpace(region))
	}
	return strings.Join(parts, "-")
}

// Tags bundles the three derived values of one record.
type Tags struct {
	Script Decision
	Region Decision
	BCP47  string
}

// Derive decides script, region and tag for in. The script segment of the
// tag is emitted only when a source supplied the script.
func Derive(in Input) Tags {
	t := Tags{
		Script: Script(in),
		Region: Region(in),
	}
	tagScript := ""
	if t.Script.Sourced() {
		tagScript = t.Script.Value
	}
	t.BCP47 = BCP47(in.Code, in.ISO.ISO639_1, tagScript, t.Region.Value)
	return t
}
