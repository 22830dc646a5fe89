package storage

import (
	"context"
	"time"

	"github.com/occasio/listindex/core"
)

// LexicalMatch is one listing hit from the posting index,
// with its rank normalized to the 0..1 range.
type LexicalMatch struct {
	ListingId core.ID
	Rank      float64
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// ListingRepository provides operations for managing listings and their
// derived search documents. The posting index over document tokens is
// maintained transactionally with every write.
type ListingRepository interface {
	Repository

	// AddListings adds one or more listings to storage.
	// Generates IDs from sequence for listings with ID=0, sets CreatedAt and
	// UpdatedAt, and indexes the Document field of each listing.
	AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error)

	// UpdateListings updates existing listings, reindexing their documents.
	// Returns ErrNotFound if any listing doesn't exist.
	UpdateListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error)

	// DeleteListings removes listings and their index entries by ID.
	// Returns ErrNotFound if any listing doesn't exist.
	DeleteListings(ctx context.Context, ids ...core.ID) error

	// GetListing retrieves a single listing by ID.
	// Returns ErrNotFound if the listing doesn't exist.
	GetListing(ctx context.Context, id core.ID) (*core.Listing, error)

	// GetListings retrieves multiple listings by their IDs.
	// Returns only the listings that exist (no error for missing ones).
	GetListings(ctx context.Context, ids ...core.ID) ([]*core.Listing, error)

	// ListListings returns every stored listing, visible or not.
	// Used by bulk maintenance such as document reindexing.
	ListListings(ctx context.Context) ([]*core.Listing, error)

	// FindVisible scans for listings that are visible at the given instant
	// and satisfy all structured filters. The visibility predicate evaluated
	// here is core.IsVisible, the same function the in-process path uses.
	FindVisible(ctx context.Context, filter *core.ListingFilter, now time.Time) ([]*core.Listing, error)

	// CountVisible counts the listings FindVisible would return.
	CountVisible(ctx context.Context, filter *core.ListingFilter, now time.Time) (int, error)

	// MatchTokens ranks listings whose documents contain any of the given
	// tokens. Ranks are BM25 scores normalized to 0..1 within the result set.
	MatchTokens(ctx context.Context, tokens []string) (map[core.ID]float64, error)
}

// CategoryRepository provides operations for managing categories.
type CategoryRepository interface {
	Repository

	// AddCategories adds one or more categories.
	// Categories with ID=0 get a content-based ID derived from the slug,
	// so seeding the same category twice is idempotent.
	AddCategories(ctx context.Context, categories ...*core.Category) ([]*core.Category, error)

	// GetCategory retrieves a single category by ID.
	// Returns ErrNotFound if the category doesn't exist.
	GetCategory(ctx context.Context, id core.ID) (*core.Category, error)

	// GetCategories retrieves multiple categories by their IDs.
	// Returns only the categories that exist.
	GetCategories(ctx context.Context, ids ...core.ID) ([]*core.Category, error)

	// GetCategoryBySlug finds a category by its stable slug.
	// Returns ErrNotFound if no category carries the slug.
	GetCategoryBySlug(ctx context.Context, slug string) (*core.Category, error)

	// ListCategories returns all categories.
	ListCategories(ctx context.Context) ([]*core.Category, error)
}

// SellerRepository provides read-mostly access to seller records.
type SellerRepository interface {
	Repository

	// AddSellers adds one or more sellers, generating sequence IDs for ID=0.
	AddSellers(ctx context.Context, sellers ...*core.Seller) ([]*core.Seller, error)

	// GetSeller retrieves a single seller by ID.
	// Returns ErrNotFound if the seller doesn't exist.
	GetSeller(ctx context.Context, id core.ID) (*core.Seller, error)

	// GetSellers retrieves multiple sellers by their IDs.
	// Returns only the sellers that exist.
	GetSellers(ctx context.Context, ids ...core.ID) ([]*core.Seller, error)
}

// BidRepository provides operations for managing bids against listings.
type BidRepository interface {
	Repository

	// AddBids adds one or more bids, generating sequence IDs for ID=0.
	AddBids(ctx context.Context, bids ...*core.Bid) ([]*core.Bid, error)

	// GetBidsForListing retrieves all bids against a listing.
	GetBidsForListing(ctx context.Context, listingId core.ID) ([]*core.Bid, error)

	// GetBidsForListings bulk-fetches bids for a set of listings.
	GetBidsForListings(ctx context.Context, listingIds ...core.ID) (map[core.ID][]*core.Bid, error)

	// GetBidCounts returns the number of bids per listing.
	GetBidCounts(ctx context.Context, listingIds ...core.ID) (map[core.ID]int, error)
}
