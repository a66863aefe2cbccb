package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lahtis/glfm/pkg/errors"
	"github.com/lahtis/glfm/pkg/language"
	"github.com/lahtis/glfm/pkg/source"
)

func catalog(pairs ...string) language.Catalog {
	c := language.Catalog{}
	for i := 0; i+1 < len(pairs); i += 2 {
		c[pairs[i]] = &language.Record{ID: pairs[i], Fallback: pairs[i+1]}
	}
	return c
}

func TestDecide(t *testing.T) {
	assert.Equal(t, "fin", Decide("krl", source.ISOInfo{}, source.Attributes{Fallback: "fin"}))
	assert.Equal(t, "est", Decide("ekk", source.ISOInfo{Macrolanguage: "est"}, source.Attributes{}))
	assert.Equal(t, "fin", Decide("fin", source.ISOInfo{}, source.Attributes{}))
}

func TestValidateValidChains(t *testing.T) {
	c := catalog("fin", "fin", "krl", "fin", "olo", "krl")
	assert.Empty(t, Validate(c))
}

func TestValidateMissing(t *testing.T) {
	diags := Validate(catalog("fin", ""))
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrCodeMissingFallback, diags[0].Code)
	assert.Equal(t, "fin", diags[0].Subject)
}

func TestValidateDangling(t *testing.T) {
	diags := Validate(catalog("fin", "xyz"))
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrCodeDanglingFallback, diags[0].Code)
	assert.Equal(t, "fin", diags[0].Subject)
}

func TestValidateCycle(t *testing.T) {
	diags := Validate(catalog("a", "b", "b", "a"))

	forA := diags.BySubject("a")
	require.Len(t, forA, 1)
	assert.Equal(t, errors.ErrCodeFallbackCycle, forA[0].Code)
	assert.Contains(t, forA[0].Message, `"b"`)

	assert.Len(t, diags.ByCode(errors.ErrCodeFallbackCycle), 2)
}

func TestValidateFeedingIntoCycle(t *testing.T) {
	// c is not on the cycle but its chain enters it.
	diags := Validate(catalog("a", "b", "b", "a", "c", "a"))
	forC := diags.BySubject("c")
	require.Len(t, forC, 1)
	assert.Equal(t, errors.ErrCodeFallbackCycle, forC[0].Code)
}

func TestValidateChainThroughDangling(t *testing.T) {
	// b dangles; a's walk stops there and only b is reported.
	diags := Validate(catalog("a", "b", "b", "zzz"))
	require.Len(t, diags, 1)
	assert.Equal(t, "b", diags[0].Subject)
	assert.Equal(t, errors.ErrCodeDanglingFallback, diags[0].Code)
}

func TestChain(t *testing.T) {
	c := catalog("fin", "fin", "krl", "fin", "olo", "krl", "a", "b", "b", "a")
	assert.Equal(t, []string{"olo", "krl", "fin"}, Chain(c, "olo"))
	assert.Equal(t, []string{"a", "b"}, Chain(c, "a"))
	assert.Nil(t, Chain(c, "missing"))
}
