package language

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknown(t *testing.T) {
	assert.True(t, IsUnknown(""))
	assert.True(t, IsUnknown("  "))
	assert.True(t, IsUnknown("UNKNOWN"))
	assert.True(t, IsUnknown("unknown"))
	assert.False(t, IsUnknown("Latn"))
	assert.False(t, IsUnknown(RegionWorld))
}

func TestScriptAndRegionShape(t *testing.T) {
	assert.True(t, IsScript("Latn"))
	assert.True(t, IsScript("Cyrl"))
	for _, s := range []string{"latn", "LATN", "fa-Arab", "Latinx", "polytonic", Unknown} {
		assert.False(t, IsScript(s), s)
	}

	assert.True(t, IsRegion("FI"))
	assert.True(t, IsRegion(RegionWorld))
	for _, s := range []string{"fi", "FIN", "EUROPE", "01", "1234", ""} {
		assert.False(t, IsRegion(s), s)
	}
}

func TestCatalogCodes(t *testing.T) {
	c := Catalog{
		"urj": {ID: "urj", ISO639_5: "urj"},
		"fin": {ID: "fin", ISO639_3: "fin"},
		"est": {ID: "est", ISO639_3: "est"},
	}

	assert.Equal(t, []string{"est", "fin", "urj"}, c.Codes())
	assert.Equal(t, []string{"urj"}, c.Families())

	r, ok := c.Get("fin")
	require.True(t, ok)
	assert.False(t, r.IsFamily())
}

func TestCatalogJSONIsDeterministic(t *testing.T) {
	build := func() Catalog {
		c := Catalog{}
		for _, code := range []string{"smn", "fin", "sme", "est", "urj"} {
			c[code] = &Record{ID: code, Name: code, PosStats: map[string]int{"verb": 2, "noun": 1}}
		}
		return c
	}

	a, err := json.Marshal(build())
	require.NoError(t, err)
	b, err := json.Marshal(build())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRecordHasScript(t *testing.T) {
	r := &Record{WrittenScripts: []string{"Latn", "Cyrl"}}
	assert.True(t, r.HasScript("Cyrl"))
	assert.False(t, r.HasScript("Arab"))
}

func TestFamilyMapProjections(t *testing.T) {
	m := FamilyMap{
		"fiu": {
			Macro:       Node{ID: "Q1", Label: "Finnic"},
			ParentChain: []string{"Q1", "Q2"},
		},
	}

	macro := m.Level(func(l Lineage) Node { return l.Macro })
	assert.Equal(t, "Finnic", macro["fiu"].Label)
	assert.Equal(t, []string{"Q1", "Q2"}, m.Chains()["fiu"])
}
