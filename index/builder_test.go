package index

import (
	"strings"
	"testing"

	"github.com/occasio/listindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	keywords, err := DefaultKeywordTable()
	require.NoError(t, err)
	b, err := NewBuilder(keywords)
	require.NoError(t, err)
	return b
}

func TestNewBuilder_RequiresKeywordTable(t *testing.T) {
	_, err := NewBuilder(nil)
	assert.ErrorIs(t, err, ErrKeywordTableRequired)
}

func TestBuilder_Build(t *testing.T) {
	b := newTestBuilder(t)

	year := 2021
	listing := &core.Listing{
		Title:       "Rennvelo Carbon 56cm",
		Brand:       "BMC",
		Model:       "Teammachine",
		Description: "Sehr gepflegt, wenig gefahren.",
		Condition:   "used",
		Material:    "Carbon",
		Year:        &year,
	}
	categories := []*core.Category{{Name: "Sport", Slug: "sport"}}
	seller := &core.Seller{City: "Zürich", PostalCode: "8004"}

	document, err := b.Build(listing, categories, seller)
	require.NoError(t, err)

	tf := termFrequencies(document)
	assert.Equal(t, 3, tf["rennvelo"], "title terms weighted 3x")
	assert.Equal(t, 2, tf["bmc"], "brand weighted 2x")
	assert.Equal(t, 2, tf["teammachine"], "model weighted 2x")
	assert.Equal(t, 1, tf["sport"], "category name appears once")
	assert.GreaterOrEqual(t, tf["fitness"], 1, "category keywords injected")
	assert.Equal(t, 1, tf["gepflegt"])
	assert.Equal(t, 1, tf["occasion"], "condition code expands to vocabulary")
	assert.Equal(t, 1, tf["zuerich"], "umlauts fold to digraphs")
	assert.Equal(t, 1, tf["8004"])
	assert.Equal(t, 1, tf["2021"])
}

func TestBuilder_BuildNormalized(t *testing.T) {
	b := newTestBuilder(t)

	document, err := b.Build(&core.Listing{Title: "  Fußball-Schuhe  "}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, document, core.Normalize(document), "document is in normal form")
	assert.Contains(t, document, "fussball")
}

func TestBuilder_BuildMinimalListing(t *testing.T) {
	b := newTestBuilder(t)

	// title only: still a valid, non-empty document
	document, err := b.Build(&core.Listing{Title: "Sofa"}, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, document)
}

func TestBuilder_BuildEmptyTitle(t *testing.T) {
	b := newTestBuilder(t)

	for _, title := range []string{"", "   "} {
		_, err := b.Build(&core.Listing{Title: title}, nil, nil)
		assert.ErrorIs(t, err, core.ErrDocumentBuildFailed)
		assert.ErrorIs(t, err, core.ErrEmptyTitle)
	}

	_, err := b.Build(nil, nil, nil)
	assert.ErrorIs(t, err, core.ErrDocumentBuildFailed)
}

func TestBuilder_BuildWarranty(t *testing.T) {
	b := newTestBuilder(t)

	document, err := b.Build(&core.Listing{
		Title:        "Taucheruhr",
		Warranty:     true,
		WarrantyText: "24 Monate Herstellergarantie",
	}, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, document, "garantie")
	assert.Contains(t, document, "herstellergarantie")
}

func TestBuilder_BuildShippingKeywords(t *testing.T) {
	b := newTestBuilder(t)

	document, err := b.Build(&core.Listing{
		Title:    "Esstisch Eiche",
		Shipping: `{"pickup":true,"post":false}`,
	}, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, document, "abholung")
	assert.Contains(t, document, "selbstabholung")
	assert.NotContains(t, document, "versand", "disabled methods contribute nothing")
}

func TestBuilder_BuildMalformedShipping(t *testing.T) {
	b := newTestBuilder(t)

	document, err := b.Build(&core.Listing{
		Title:    "Esstisch Eiche",
		Shipping: `{broken`,
	}, nil, nil)
	require.NoError(t, err, "malformed shipping selections are not fatal")
	assert.Contains(t, document, "esstisch")
}

func TestBuilder_BuildDeterministic(t *testing.T) {
	b := newTestBuilder(t)

	listing := &core.Listing{
		Title:    "Kinderwagen",
		Shipping: `{"pickup":true,"post":true,"courier":true}`,
	}
	first, err := b.Build(listing, nil, nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := b.Build(listing, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func termFrequencies(document string) map[string]int {
	tf := make(map[string]int)
	for _, f := range strings.Fields(document) {
		tf[f]++
	}
	return tf
}
