package search

import (
	"fmt"
	"sort"

	"github.com/occasio/listindex/core"
)

// SortField selects the ordering of a result set.
type SortField string

const (
	SortRelevance  SortField = "relevance"
	SortPrice      SortField = "price"
	SortCreatedAt  SortField = "createdAt"
	SortAuctionEnd SortField = "auctionEnd"
	SortBids       SortField = "bids"
)

// Sort is the requested result ordering. The zero value means the path
// default: relevance for text queries, creation time descending otherwise.
// Descending applies to price and createdAt; relevance and bids are always
// descending, auctionEnd always ascending with open-ended listings last.
type Sort struct {
	Field      SortField
	Descending bool
}

func (s Sort) validate() error {
	switch s.Field {
	case "", SortRelevance, SortPrice, SortCreatedAt, SortAuctionEnd, SortBids:
		return nil
	default:
		return fmt.Errorf("%w: %q", core.ErrInvalidSort, s.Field)
	}
}

// orderCandidates sorts candidates in place. Top-tier promoted listings are
// strictly partitioned before all others whatever the sort field; inside
// each partition the requested field applies, with creation time descending
// and then ID as final tiebreaks so the ordering is total.
func orderCandidates(candidates []*candidate, s Sort) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		ap, bp := tierPartition(a.tier), tierPartition(b.tier)
		if ap != bp {
			return ap < bp
		}

		switch s.Field {
		case SortPrice:
			if a.listing.Price != b.listing.Price {
				if s.Descending {
					return a.listing.Price > b.listing.Price
				}
				return a.listing.Price < b.listing.Price
			}
		case SortCreatedAt:
			if !a.listing.CreatedAt.Equal(b.listing.CreatedAt) {
				if s.Descending {
					return a.listing.CreatedAt.After(b.listing.CreatedAt)
				}
				return a.listing.CreatedAt.Before(b.listing.CreatedAt)
			}
		case SortAuctionEnd:
			ae, be := a.listing.AuctionEnd, b.listing.AuctionEnd
			switch {
			case ae == nil && be != nil:
				return false
			case ae != nil && be == nil:
				return true
			case ae != nil && be != nil && !ae.Equal(*be):
				return ae.Before(*be)
			}
		case SortBids:
			if a.bidCount != b.bidCount {
				return a.bidCount > b.bidCount
			}
		default: // SortRelevance
			if a.score != b.score {
				return a.score > b.score
			}
		}

		if !a.listing.CreatedAt.Equal(b.listing.CreatedAt) {
			return a.listing.CreatedAt.After(b.listing.CreatedAt)
		}
		return a.listing.Id > b.listing.Id
	})
}

// tierPartition is the primary sort key: 0 for top-tier promotions,
// 1 for everything else.
func tierPartition(tier core.BoosterTier) int {
	if tier == core.TierTop {
		return 0
	}
	return 1
}
