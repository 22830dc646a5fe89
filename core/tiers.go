package core

// BoosterTier is the internal promotion tier of a listing. Higher tiers rank
// strictly above lower tiers; the top tier is partitioned before all other
// results regardless of relevance score.
type BoosterTier int

const (
	TierNone BoosterTier = iota
	TierLow
	TierMid
	TierTop
)

// tagTiers maps raw booster tags to tiers. Two naming schemes are in the
// wild: the original gold/silver/bronze tags and the later storefront names.
// Both stay accepted as input; everything downstream works on BoosterTier.
var tagTiers = map[string]BoosterTier{
	"gold":    TierTop,
	"top-ad":  TierTop,
	"silver":  TierMid,
	"premium": TierMid,
	"bronze":  TierLow,
	"boost":   TierLow,
}

// TierForTag translates a single raw booster tag to its tier.
// Unknown tags map to TierNone.
func TierForTag(tag string) BoosterTier {
	return tagTiers[tag]
}

// TierForTags resolves the effective tier of a tag set. Tags are mutually
// independent, so when several tiers are present the highest one wins; tiers
// are never summed.
func TierForTags(tags []string) BoosterTier {
	tier := TierNone
	for _, tag := range tags {
		if t := TierForTag(tag); t > tier {
			tier = t
		}
	}
	return tier
}

// Tier returns the effective promotion tier of the listing.
func (l *Listing) Tier() BoosterTier {
	return TierForTags(l.Boosters)
}
