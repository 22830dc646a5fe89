package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// digraphs maps locale letter variants to fixed ASCII digraphs. The same
// mapping runs on the indexing and the query path, so comparisons stay
// symmetric.
var digraphs = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// Normalize folds text to its canonical search form: lowercase, umlauts to
// digraphs, remaining diacritics stripped, punctuation to spaces, whitespace
// collapsed and trimmed. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = digraphs.Replace(text)

	// Stateful and not safe for parallel use, so build one per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripper, text); err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it into tokens, dropping tokens
// shorter than two runes.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// digraphCollapse rewrites umlaut digraphs back to their plain base letter.
var digraphCollapse = strings.NewReplacer(
	"ae", "a",
	"oe", "o",
	"ue", "u",
)

// SwapDigraphs returns the locale-variant form of an already normalized
// token with umlaut digraphs collapsed ("fuessball" -> "fussball"). Used by
// the query expander as a rewrite before falling back to fuzzy matching.
func SwapDigraphs(token string) string {
	return digraphCollapse.Replace(token)
}
