package search

import "github.com/occasio/listindex/core"

// Scorer holds the named weights of the ranking formula. Keeping the
// formula in one small value makes it testable in isolation from storage
// and lets experiments tune individual weights.
//
// The tier bonuses dwarf every other term on purpose: a paid promotion
// outranks any organic relevance inside its partition.
type Scorer struct {
	LexicalWeight float64
	FuzzyWeight   float64
	TitleBonus    float64
	BrandBonus    float64

	TopTierBonus float64
	MidTierBonus float64
	LowTierBonus float64
}

// DefaultScorer returns the production weights.
func DefaultScorer() Scorer {
	return Scorer{
		LexicalWeight: 10,
		FuzzyWeight:   2,
		TitleBonus:    5,
		BrandBonus:    3,
		TopTierBonus:  10000,
		MidTierBonus:  1000,
		LowTierBonus:  200,
	}
}

// ScoreInputs are the per-candidate match signals feeding the formula.
type ScoreInputs struct {
	// LexicalRank is the normalized posting-index rank, 0..1.
	LexicalRank float64
	// FuzzySimilarity is the trigram similarity of probe and document, 0..1.
	FuzzySimilarity float64
	// TitleContains reports whether the normalized query is a substring of
	// the normalized title.
	TitleContains bool
	// BrandContains likewise for the brand.
	BrandContains bool
	// Tier is the listing's effective promotion tier.
	Tier core.BoosterTier
}

// Score computes the composite relevance score of a candidate.
func (s Scorer) Score(in ScoreInputs) float64 {
	score := s.LexicalWeight*in.LexicalRank + s.FuzzyWeight*in.FuzzySimilarity
	if in.TitleContains {
		score += s.TitleBonus
	}
	if in.BrandContains {
		score += s.BrandBonus
	}
	return score + s.TierBonus(in.Tier)
}

// TierBonus maps a promotion tier to its score contribution. Only the
// highest tier of a listing counts; tiers are never summed.
func (s Scorer) TierBonus(tier core.BoosterTier) float64 {
	switch tier {
	case core.TierTop:
		return s.TopTierBonus
	case core.TierMid:
		return s.MidTierBonus
	case core.TierLow:
		return s.LowTierBonus
	default:
		return 0
	}
}
