package expand

import (
	"log/slog"
	"strings"

	"github.com/occasio/listindex/core"
)

// Expansion caps. They bound the size of the query shipped to storage, not
// the quality of the match: the original tokens always come first.
const (
	maxSynonymsPerToken = 10
	maxBrandsPerToken   = 5
	maxSimilarKeys      = 3
	maxLexicalTokens    = 50
	maxProbeTokens      = 30
	maxSuggestions      = 5
	fuzzyMinTokenLen    = 3
	maxEditDistance     = 2
)

// Expansion is the enriched form of a raw user query.
type Expansion struct {
	// Query is the normalized form of the raw input.
	Query string
	// LexicalTokens are the expanded tokens handed to the posting index.
	LexicalTokens []string
	// OrExpr is the boolean-OR string form of LexicalTokens.
	OrExpr string
	// FuzzyProbe is the space-joined probe for trigram similarity.
	FuzzyProbe string
	// Tokens is the full expanded token set, original tokens first.
	Tokens []string
	// Suggestions are probable typo corrections found via edit distance.
	Suggestions []string
	// DidYouMean is the query with each token replaced by its best
	// correction, empty when it would equal Query.
	DidYouMean string
}

// IsEmpty reports whether the expansion carries no usable tokens.
func (e *Expansion) IsEmpty() bool {
	return len(e.Tokens) == 0
}

// Expander turns raw queries into Expansions using a static Dictionary.
// Stateless apart from the read-only dictionary, so one Expander serves
// all requests.
type Expander struct {
	dict   *Dictionary
	logger *slog.Logger
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) ExpanderOption {
	return func(e *Expander) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExpander creates an Expander over the given dictionary.
func NewExpander(dict *Dictionary, opts ...ExpanderOption) (*Expander, error) {
	if dict == nil {
		return nil, ErrDictionaryRequired
	}
	e := &Expander{
		dict:   dict,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Expand tokenizes and normalizes a raw query and expands every token via
// the dictionary. It never fails: empty or nonsense input yields the trivial
// expansion with no tokens.
func (e *Expander) Expand(raw string) *Expansion {
	result := &Expansion{
		Query: core.Normalize(raw),
	}

	tokens := core.Tokenize(raw)
	if len(tokens) == 0 {
		return result
	}

	set := newTokenSet()
	corrections := make(map[string]string, len(tokens))

	for _, token := range tokens {
		set.add(token)

		if e.expandDirect(token, set) {
			continue
		}

		// Locale-variant rewrite: retry with umlaut digraphs collapsed.
		if variant := core.SwapDigraphs(token); variant != token {
			set.add(variant)
			if e.expandDirect(variant, set) {
				continue
			}
		}

		if len([]rune(token)) < fuzzyMinTokenLen {
			continue
		}

		similar := e.dict.SimilarKeys(token, maxEditDistance)
		if len(similar) > maxSimilarKeys {
			similar = similar[:maxSimilarKeys]
		}
		for i, key := range similar {
			if i == 0 {
				corrections[token] = key
			}
			set.add(key)
			e.expandDirect(key, set)
			if len(result.Suggestions) < maxSuggestions {
				result.Suggestions = append(result.Suggestions, key)
			}
		}
	}

	result.Tokens = set.ordered

	lexical := set.ordered
	if len(lexical) > maxLexicalTokens {
		lexical = lexical[:maxLexicalTokens]
	}
	result.LexicalTokens = lexical
	result.OrExpr = strings.Join(lexical, " | ")

	probe := set.ordered
	if len(probe) > maxProbeTokens {
		probe = probe[:maxProbeTokens]
	}
	result.FuzzyProbe = strings.Join(probe, " ")

	if len(corrections) > 0 {
		corrected := make([]string, len(tokens))
		for i, token := range tokens {
			if c, ok := corrections[token]; ok {
				corrected[i] = c
			} else {
				corrected[i] = token
			}
		}
		if sentence := strings.Join(corrected, " "); sentence != result.Query {
			result.DidYouMean = sentence
		}
	}

	return result
}

// expandDirect adds the dictionary expansions of a token to the set and
// reports whether the token had an entry.
func (e *Expander) expandDirect(token string, set *tokenSet) bool {
	if !e.dict.Has(token) {
		return false
	}

	synonyms := e.dict.Synonyms(token)
	if len(synonyms) > maxSynonymsPerToken {
		synonyms = synonyms[:maxSynonymsPerToken]
	}
	for _, s := range synonyms {
		set.add(s)
	}

	brands := e.dict.Brands(token)
	if len(brands) > maxBrandsPerToken {
		brands = brands[:maxBrandsPerToken]
	}
	for _, b := range brands {
		set.add(b)
	}

	return true
}

// tokenSet is an insertion-ordered string set, so expansion output stays
// deterministic for a fixed dictionary snapshot.
type tokenSet struct {
	seen    map[string]bool
	ordered []string
}

func newTokenSet() *tokenSet {
	return &tokenSet{seen: make(map[string]bool)}
}

func (s *tokenSet) add(token string) {
	if token == "" || s.seen[token] {
		return
	}
	s.seen[token] = true
	s.ordered = append(s.ordered, token)
}
