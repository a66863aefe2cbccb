package derive

import (
	"github.com/lahtis/glfm/pkg/language"
)

// Tier identifies which rule produced a decision.
type Tier string

const (
	TierWritten Tier = "written"
	TierCLDR    Tier = "cldr"
	TierLexical Tier = "lexical"
	TierDefault Tier = "default"
)

// Decision is the outcome of a rule chain.
type Decision struct {
	Value string
	Tier  Tier
}

// Sourced reports whether a source supplied the value, as opposed to the
// literal default.
func (d Decision) Sourced() bool { return d.Tier != TierDefault }

// Rule yields a value for the input, or ok=false to defer to the next rule.
type Rule struct {
	Tier Tier
	Func func(Input) (string, bool)
}

// ScriptRules is the script precedence order.
var ScriptRules = []Rule{
	{TierWritten, scriptFromWritten},
	{TierCLDR, scriptFromCLDR},
	{TierLexical, scriptFromLexical},
}

// Script decides the default script of in using ScriptRules.
func Script(in Input) Decision {
	return decide(in, ScriptRules, language.DefaultScript)
}

func decide(in Input, rules []Rule, fallback string) Decision {
	for _, r := range rules {
		if v, ok := r.Func(in); ok {
			return Decision{Value: v, Tier: r.Tier}
		}
	}
	return Decision{Value: fallback, Tier: TierDefault}
}

// firstKnown returns the first well-formed script subtag.
func firstKnown(scripts []string) (string, bool) {
	for _, s := range scripts {
		if language.IsScript(s) {
			return s, true
		}
	}
	return "", false
}

func scriptFromWritten(in Input) (string, bool) {
	return firstKnown(in.Written.Scripts)
}

// scriptFromCLDR takes the second likely-subtags segment.
func scriptFromCLDR(in Input) (string, bool) {
	parts := in.likely()
	if len(parts) < 2 || !language.IsScript(parts[1]) {
		return "", false
	}
	return parts[1], true
}

func scriptFromLexical(in Input) (string, bool) {
	return firstKnown(in.Lexical.Scripts)
}
