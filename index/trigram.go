package index

import "github.com/occasio/listindex/core"

// TrigramSet is the set of character trigrams of a normalized string. Each
// word is padded with two leading and one trailing space before extraction,
// so word boundaries contribute trigrams too.
type TrigramSet map[string]struct{}

// NewTrigramSet extracts the trigram set of a text. The text is folded
// through the normalizer first, so the indexing and query side agree.
func NewTrigramSet(text string) TrigramSet {
	set := make(TrigramSet)
	for _, word := range core.Tokenize(text) {
		padded := []rune("  " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity computes the trigram similarity of two sets on a 0..1 scale:
// the number of shared trigrams over the size of the smaller set. Dividing
// by the smaller set instead of the union keeps a short query probe
// comparable against a long document. Tolerant of typos and independent of
// tokenization.
func (s TrigramSet) Similarity(other TrigramSet) float64 {
	if len(s) == 0 || len(other) == 0 {
		return 0
	}

	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}

	return float64(shared) / float64(len(small))
}

// Similarity is the one-shot form for callers without a precomputed set.
func Similarity(a, b string) float64 {
	return NewTrigramSet(a).Similarity(NewTrigramSet(b))
}
