package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExpander(t *testing.T) *Expander {
	t.Helper()
	dict, err := DefaultDictionary()
	require.NoError(t, err)
	e, err := NewExpander(dict)
	require.NoError(t, err)
	return e
}

func TestNewExpander_RequiresDictionary(t *testing.T) {
	_, err := NewExpander(nil)
	assert.ErrorIs(t, err, ErrDictionaryRequired)
}

func TestExpander_EmptyInput(t *testing.T) {
	e := newTestExpander(t)

	for _, raw := range []string{"", "   ", "!!!", "-"} {
		result := e.Expand(raw)
		assert.True(t, result.IsEmpty(), "%q must yield the trivial expansion", raw)
		assert.Empty(t, result.LexicalTokens)
		assert.Empty(t, result.OrExpr)
		assert.Empty(t, result.DidYouMean)
	}
}

func TestExpander_DirectExpansion(t *testing.T) {
	e := newTestExpander(t)

	result := e.Expand("Rennvelo")
	require.False(t, result.IsEmpty())

	assert.Equal(t, "rennvelo", result.Query)
	assert.Equal(t, "rennvelo", result.Tokens[0], "original token comes first")
	assert.Contains(t, result.Tokens, "rennrad")
	assert.Contains(t, result.Tokens, "velo")
	assert.Contains(t, result.Tokens, "bmc", "brand terms ride along")
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.DidYouMean)
}

func TestExpander_SymmetricSynonyms(t *testing.T) {
	e := newTestExpander(t)

	forward := e.Expand("rennvelo")
	backward := e.Expand("rennrad")

	assert.Contains(t, forward.Tokens, "rennrad")
	assert.Contains(t, backward.Tokens, "rennvelo")
}

func TestExpander_DigraphVariant(t *testing.T) {
	dict, err := parseDictionary([]byte(`
synonyms:
  bar: [theke, tresen]
`))
	require.NoError(t, err)
	e, err := NewExpander(dict)
	require.NoError(t, err)

	// "bär" folds to "baer"; the digraph-collapsed retry finds the entry
	result := e.Expand("bär")
	assert.Equal(t, []string{"baer", "bar", "theke", "tresen"}, result.Tokens)
}

func TestExpander_TypoCorrection(t *testing.T) {
	e := newTestExpander(t)

	result := e.Expand("fusbal")
	require.False(t, result.IsEmpty())

	assert.Equal(t, "fusbal", result.Tokens[0])
	assert.Contains(t, result.Tokens, "fussball", "misspelling reaches the corrected key")
	assert.Contains(t, result.Tokens, "football", "and the key's own synonyms")
	assert.Contains(t, result.Suggestions, "fussball")
	assert.Equal(t, "fussball", result.DidYouMean)
}

func TestExpander_DidYouMeanPreservesGoodTokens(t *testing.T) {
	e := newTestExpander(t)

	result := e.Expand("fusbal schuhe")
	assert.Equal(t, "fussball schuhe", result.DidYouMean)
}

func TestExpander_ShortTokensSkipFuzzy(t *testing.T) {
	e := newTestExpander(t)

	// two runes: kept as a token but never fuzzy-matched
	result := e.Expand("xy")
	assert.Equal(t, []string{"xy"}, result.Tokens)
	assert.Empty(t, result.Suggestions)
}

func TestExpander_QueryForms(t *testing.T) {
	dict, err := parseDictionary([]byte(`
synonyms:
  velo: [fahrrad]
`))
	require.NoError(t, err)
	e, err := NewExpander(dict)
	require.NoError(t, err)

	result := e.Expand("velo blau")
	assert.Equal(t, []string{"velo", "fahrrad", "blau"}, result.Tokens)
	assert.Equal(t, "velo | fahrrad | blau", result.OrExpr)
	assert.Equal(t, "velo fahrrad blau", result.FuzzyProbe)
}

func TestExpander_Deterministic(t *testing.T) {
	e := newTestExpander(t)

	first := e.Expand("fusbal rennvelo uhr")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Expand("fusbal rennvelo uhr"))
	}
}
