package derive

import (
	"github.com/lahtis/glfm/pkg/language"
)

// RegionRules is the region precedence order.
var RegionRules = []Rule{
	{TierCLDR, regionFromCLDR},
	{TierLexical, regionFromLexical},
}

// Region decides the default region of in using RegionRules, falling back
// to "001" (World).
func Region(in Input) Decision {
	return decide(in, RegionRules, language.RegionWorld)
}

// regionFromCLDR takes the third likely-subtags segment.
func regionFromCLDR(in Input) (string, bool) {
	parts := in.likely()
	if len(parts) < 3 || !language.IsRegion(parts[2]) {
		return "", false
	}
	return parts[2], true
}

func regionFromLexical(in Input) (string, bool) {
	if !language.IsRegion(in.Lexical.Region) {
		return "", false
	}
	return in.Lexical.Region, true
}
