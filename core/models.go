package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. Category IDs are
// derived from the category slug this way, so reseeding is idempotent.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PurchaseStatus describes the state of a purchase against a listing.
// Any status other than cancelled counts as an active sale.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusPaid      PurchaseStatus = "paid"
	PurchaseStatusShipped   PurchaseStatus = "shipped"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// Purchase records a sale against a listing. Only the status matters to
// search: a non-cancelled purchase removes the listing from results.
type Purchase struct {
	Status    PurchaseStatus
	CreatedAt time.Time
}

// Terminal-negative moderation statuses. A nil ModerationStatus means the
// listing is pending review and stays visible, matching a "pending" status.
const (
	ModerationRejected = "rejected"
	ModerationBlocked  = "blocked"
	ModerationRemoved  = "removed"
	ModerationEnded    = "ended"
	ModerationPending  = "pending"
)

// Listing is the sellable entity. The Document field holds the derived
// search document; it is denormalized state, always reconstructible from the
// listing plus its category and seller records.
type Listing struct {
	Id               ID
	Title            string
	Description      string
	Brand            string
	Model            string
	Price            float64
	BuyNowPrice      *float64
	Condition        string // condition code, e.g. "new", "used", "refurbished"
	Reference        string // manufacturer reference number
	Material         string
	Movement         string // movement/mechanism for watches and machinery
	Year             *int
	Warranty         bool
	WarrantyText     string
	Images           []string
	Boosters         []string // raw promotion-tier tags, see TierForTags
	IsAuction        bool
	AuctionStart     *time.Time
	AuctionEnd       *time.Time
	ModerationStatus *string // nil means pending/visible
	Purchase         *Purchase
	Shipping         string // serialized shipping-method selections (JSON)
	SellerId         ID
	CategoryIds      []ID
	Document         string // derived search document, rebuilt on every write
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CurrentPrice returns the effective price of the listing given its bids:
// the highest bid amount if any bid exists, otherwise the base price.
func (l *Listing) CurrentPrice(bids []*Bid) float64 {
	var highest float64
	var found bool
	for _, b := range bids {
		if b == nil {
			continue
		}
		if !found || b.Amount > highest {
			highest = b.Amount
			found = true
		}
	}
	if found {
		return highest
	}
	return l.Price
}

// Bid is an offer against an auction listing.
type Bid struct {
	Id        ID
	ListingId ID
	Amount    float64
	CreatedAt time.Time
}

// Category is a listing classification. Keyword augmentation for document
// building lives in the external keyword table, not on the record.
type Category struct {
	Id   ID
	Name string
	Slug string
}

// Seller is consumed read-only for display enrichment and postal filtering.
type Seller struct {
	Id         ID
	City       string
	PostalCode string
	Verified   bool
}
