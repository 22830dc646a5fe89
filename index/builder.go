package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/occasio/listindex/core"
)

// conditionTerms expands a condition code into descriptive vocabulary, so
// listings surface for queries like "neuwertig" that never appear verbatim.
var conditionTerms = map[string][]string{
	"new":         {"neu", "neuware", "originalverpackt", "ovp"},
	"like-new":    {"neuwertig", "wie neu", "kaum gebraucht"},
	"used":        {"gebraucht", "occasion", "secondhand"},
	"refurbished": {"refurbished", "generalueberholt", "revidiert"},
	"defective":   {"defekt", "bastler", "ersatzteilspender"},
}

// shippingTerms expands shipping-method selection flags into searchable
// vocabulary.
var shippingTerms = map[string][]string{
	"pickup":   {"abholung", "selbstabholung", "pickup"},
	"post":     {"versand", "post", "lieferung"},
	"courier":  {"kurier", "lieferung"},
	"delivery": {"lieferung", "zustellung"},
}

// Builder assembles the derived search document of a listing. Field
// importance is encoded as controlled repetition, since the lexical ranking
// downstream rewards term frequency. Stateless apart from the read-only
// keyword table, so one Builder serves all writes.
type Builder struct {
	keywords *KeywordTable
	logger   *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets a custom logger. Default is slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// NewBuilder creates a Builder over the given keyword table.
func NewBuilder(keywords *KeywordTable, opts ...BuilderOption) (*Builder, error) {
	if keywords == nil {
		return nil, ErrKeywordTableRequired
	}
	b := &Builder{
		keywords: keywords,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build derives the search document for a listing from its fields, assigned
// categories, and seller. Deterministic and side-effect-free; persisting the
// result is the caller's job. A listing without a title cannot be indexed
// and rejects with ErrDocumentBuildFailed.
func (b *Builder) Build(listing *core.Listing, categories []*core.Category, seller *core.Seller) (string, error) {
	if listing == nil || strings.TrimSpace(listing.Title) == "" {
		return "", fmt.Errorf("%w: %w", core.ErrDocumentBuildFailed, core.ErrEmptyTitle)
	}

	var parts []string
	add := func(text string, times int) {
		if text == "" {
			return
		}
		for i := 0; i < times; i++ {
			parts = append(parts, text)
		}
	}

	add(core.Normalize(listing.Title), 3)
	add(core.Normalize(listing.Brand), 2)
	add(core.Normalize(listing.Model), 2)

	for _, category := range categories {
		if category == nil {
			continue
		}
		add(core.Normalize(category.Name), 1)
		for _, term := range b.keywords.Terms(category.Slug) {
			add(term, 1)
		}
	}

	add(core.Normalize(listing.Description), 1)

	add(core.Normalize(listing.Reference), 1)
	for _, term := range conditionTerms[listing.Condition] {
		add(term, 1)
	}
	add(core.Normalize(listing.Material), 1)
	add(core.Normalize(listing.Movement), 1)
	if listing.Year != nil {
		add(strconv.Itoa(*listing.Year), 1)
	}
	if listing.Warranty {
		add("garantie", 1)
		add(core.Normalize(listing.WarrantyText), 1)
	}

	if seller != nil {
		add(core.Normalize(seller.City), 1)
		add(core.Normalize(seller.PostalCode), 1)
	}

	for _, term := range b.shippingKeywords(listing) {
		add(term, 1)
	}

	return core.Normalize(strings.Join(parts, " ")), nil
}

// shippingKeywords parses the serialized shipping-method selections and
// expands the enabled methods into vocabulary terms. Malformed selections
// are skipped, never an error: shipping terms are enrichment, not required
// document content.
func (b *Builder) shippingKeywords(listing *core.Listing) []string {
	if listing.Shipping == "" {
		return nil
	}

	var selections map[string]bool
	if err := json.Unmarshal([]byte(listing.Shipping), &selections); err != nil {
		b.logger.Warn("skipping malformed shipping selections",
			"listingId", listing.Id, "err", err)
		return nil
	}

	var terms []string
	seen := make(map[string]bool)
	for method, enabled := range selections {
		if !enabled {
			continue
		}
		for _, term := range shippingTerms[method] {
			if !seen[term] {
				seen[term] = true
				terms = append(terms, term)
			}
		}
	}
	sort.Strings(terms)
	return terms
}
