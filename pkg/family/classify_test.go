package family

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lahtis/glfm/pkg/language"
	"github.com/lahtis/glfm/pkg/source"
)

func familyTable() source.FamilyTable {
	return source.FamilyTable{
		"urj":     {CanonicalName: "Uralic"},
		"urj-fin": {CanonicalName: "Finnic", Parent: "urj"},
		"fiu-fin": {CanonicalName: "Finnic proper", Parent: "urj-fin"},
		"smi":     {CanonicalName: "Sami", Parent: "urj"},
	}
}

func TestClassifier_Ancestors(t *testing.T) {
	c := NewClassifier([]string{"Q2"})
	assert.Equal(t, []string{"Q1", "Q3"}, c.Ancestors([]string{"Q1", "Q2", "Q3"}))
	assert.Empty(t, c.Ancestors(nil))
}

func TestClassify_Levels(t *testing.T) {
	c := NewClassifier([]string{"Q2"})
	labels := StaticLabeler{"Q1": "Finnic", "Q3": "Uralic", "Q0": "Finnish group"}

	fm := c.Classify(context.Background(),
		map[string]string{"fin": "Q0"},
		map[string][]string{"fin": {"Q1", "Q2", "Q3"}},
		labels,
	)

	l := fm["fin"]
	assert.Equal(t, "Q0", l.Seed)
	assert.Equal(t, language.Node{ID: "Q1", Label: "Finnic"}, l.Macro)
	assert.Equal(t, language.Node{ID: "Q3", Label: "Uralic"}, l.UltimateMacro)
	assert.Equal(t, "Q3", l.SuperMacro.ID)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, l.ParentChain)
	require.Len(t, l.AllAncestors, 2)
	assert.Equal(t, "Q1", l.AllAncestors[0].ID)
}

func TestClassify_EmptyChainUsesSentinels(t *testing.T) {
	c := NewClassifier(DefaultGeneric)
	fm := c.Classify(context.Background(), nil, map[string][]string{"xyz": {}}, StaticLabeler{})

	l := fm["xyz"]
	assert.Equal(t, language.Node{ID: "", Label: language.UnknownLabel}, l.Macro)
	assert.Equal(t, language.Node{ID: language.UltimateUnknown, Label: language.UnknownLabel}, l.UltimateMacro)
	assert.Empty(t, l.AllAncestors)
}

func TestClassify_SeedOnlyFallsBackToSeed(t *testing.T) {
	c := NewClassifier(DefaultGeneric)
	fm := c.Classify(context.Background(),
		map[string]string{"abc": "Q5"},
		map[string][]string{"abc": {"Q34770"}},
		StaticLabeler{"Q5": "Isolate"},
	)

	l := fm["abc"]
	assert.Equal(t, language.Node{ID: "Q5", Label: "Isolate"}, l.SuperMacro)
	assert.Equal(t, l.SuperMacro, l.UltimateMacro)
	assert.Equal(t, "", l.Macro.ID)
}

func TestClassify_SuperMacroPrefersSharedNode(t *testing.T) {
	c := NewClassifier(nil)
	chains := map[string][]string{
		"fin": {"Finnic", "FinnoUgric", "Uralic", "Top"},
		"hun": {"Ugric", "FinnoUgric", "Uralic2"},
	}
	labels := StaticLabeler{
		"Finnic":     "Finnic",
		"FinnoUgric": "Finno-Ugric",
		"Top":        "Top",
		"Ugric":      "Ugric",
	}

	fm := c.Classify(context.Background(), nil, chains, labels)

	// Top is labelled but used by one code only; FinnoUgric is shared.
	assert.Equal(t, "FinnoUgric", fm["fin"].SuperMacro.ID)
	assert.Equal(t, "FinnoUgric", fm["hun"].SuperMacro.ID)
	assert.Equal(t, "Top", fm["fin"].UltimateMacro.ID)
	assert.Equal(t, language.UnknownLabel, fm["hun"].UltimateMacro.Label)
}

func TestClassify_SuperMacroWithoutLabels(t *testing.T) {
	c := NewClassifier(nil)
	fm := c.Classify(context.Background(), nil, map[string][]string{"a": {"X", "Y"}}, nil)

	assert.Equal(t, "X", fm["a"].SuperMacro.ID)
	assert.Equal(t, language.UnknownLabel, fm["a"].SuperMacro.Label)
}

func TestTableLabeler(t *testing.T) {
	l := TableLabeler{Table: familyTable()}

	got, ok := l.Label(context.Background(), "urj")
	assert.True(t, ok)
	assert.Equal(t, "Uralic", got)

	_, ok = l.Label(context.Background(), "nope")
	assert.False(t, ok)
}
