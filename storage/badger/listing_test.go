package badger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingRepository_AddAndGet(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	listing := &core.Listing{
		Title:    "Rennvelo Carbon 56cm",
		Price:    1200,
		Document: "rennvelo carbon 56cm rennvelo carbon 56cm rennvelo carbon 56cm",
	}

	added, err := repos.Listings.AddListings(ctx, listing)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.NotZero(t, added[0].Id)
	assert.False(t, added[0].CreatedAt.IsZero())

	got, err := repos.Listings.GetListing(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "Rennvelo Carbon 56cm", got.Title)
	assert.Equal(t, 1200.0, got.Price)
}

func TestListingRepository_GetMissing(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Listings.GetListing(context.Background(), 9999)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestListingRepository_UpdateReindexes(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	listing := &core.Listing{Title: "Stadtvelo", Price: 150, Document: "stadtvelo gruen"}
	_, err = repos.Listings.AddListings(ctx, listing)
	require.NoError(t, err)

	ranks, err := repos.Listings.MatchTokens(ctx, []string{"stadtvelo"})
	require.NoError(t, err)
	require.Contains(t, ranks, listing.Id)

	listing.Title = "Mountainbike"
	listing.Document = "mountainbike blau"
	_, err = repos.Listings.UpdateListings(ctx, listing)
	require.NoError(t, err)

	ranks, err = repos.Listings.MatchTokens(ctx, []string{"stadtvelo"})
	require.NoError(t, err)
	assert.NotContains(t, ranks, listing.Id)

	ranks, err = repos.Listings.MatchTokens(ctx, []string{"mountainbike"})
	require.NoError(t, err)
	assert.Contains(t, ranks, listing.Id)
}

func TestListingRepository_UpdateMissing(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Listings.UpdateListings(context.Background(), &core.Listing{Id: 404, Title: "x"})
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestListingRepository_Delete(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	listing := &core.Listing{Title: "Stadtvelo", Price: 150, Document: "stadtvelo gruen"}
	_, err = repos.Listings.AddListings(ctx, listing)
	require.NoError(t, err)

	require.NoError(t, repos.Listings.DeleteListings(ctx, listing.Id))

	_, err = repos.Listings.GetListing(ctx, listing.Id)
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	ranks, err := repos.Listings.MatchTokens(ctx, []string{"stadtvelo"})
	require.NoError(t, err)
	assert.Empty(t, ranks)
}

func TestListingRepository_MatchTokens_Ranking(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	// "rennvelo" appears three times in the first document, once in the second.
	heavy := &core.Listing{Title: "a", Price: 1, Document: "rennvelo rennvelo rennvelo carbon"}
	light := &core.Listing{Title: "b", Price: 1, Document: "rennvelo stadt komfort sattel"}
	other := &core.Listing{Title: "c", Price: 1, Document: "sofa leder braun"}
	_, err = repos.Listings.AddListings(ctx, heavy, light, other)
	require.NoError(t, err)

	ranks, err := repos.Listings.MatchTokens(ctx, []string{"rennvelo"})
	require.NoError(t, err)
	require.Len(t, ranks, 2)
	assert.NotContains(t, ranks, other.Id)
	assert.Greater(t, ranks[heavy.Id], ranks[light.Id])

	// Normalized: top rank is exactly 1.
	assert.InDelta(t, 1.0, ranks[heavy.Id], 1e-9)
	assert.Greater(t, ranks[light.Id], 0.0)
	assert.LessOrEqual(t, ranks[light.Id], 1.0)
}

func TestListingRepository_MatchTokens_Empty(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ranks, err := repos.Listings.MatchTokens(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ranks)
}

func TestListingRepository_FindVisible_Filters(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	seller := &core.Seller{City: "Zürich", PostalCode: "8004"}
	_, err = repos.Sellers.AddSellers(ctx, seller)
	require.NoError(t, err)

	catVelo := &core.Category{Name: "Velo", Slug: "velo"}
	_, err = repos.Categories.AddCategories(ctx, catVelo)
	require.NoError(t, err)

	cheap := &core.Listing{Title: "Stadtvelo", Price: 150, SellerId: seller.Id, CategoryIds: []core.ID{catVelo.Id}, Condition: "used"}
	pricey := &core.Listing{Title: "Rennvelo", Price: 2500, SellerId: seller.Id, CategoryIds: []core.ID{catVelo.Id}, Condition: "new"}
	blockedStatus := core.ModerationBlocked
	blocked := &core.Listing{Title: "Hehlerware", Price: 10, ModerationStatus: &blockedStatus}
	_, err = repos.Listings.AddListings(ctx, cheap, pricey, blocked)
	require.NoError(t, err)

	t.Run("no filter returns all visible", func(t *testing.T) {
		listings, err := repos.Listings.FindVisible(ctx, nil, now)
		require.NoError(t, err)
		assert.Len(t, listings, 2)
	})

	t.Run("price range", func(t *testing.T) {
		max := 500.0
		listings, err := repos.Listings.FindVisible(ctx, &core.ListingFilter{MaxPrice: &max}, now)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, cheap.Id, listings[0].Id)
	})

	t.Run("condition", func(t *testing.T) {
		listings, err := repos.Listings.FindVisible(ctx, &core.ListingFilter{Condition: "new"}, now)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, pricey.Id, listings[0].Id)
	})

	t.Run("postal prefix via seller", func(t *testing.T) {
		listings, err := repos.Listings.FindVisible(ctx, &core.ListingFilter{PostalPrefix: "80"}, now)
		require.NoError(t, err)
		assert.Len(t, listings, 2)

		listings, err = repos.Listings.FindVisible(ctx, &core.ListingFilter{PostalPrefix: "30"}, now)
		require.NoError(t, err)
		assert.Empty(t, listings)
	})

	t.Run("count matches find", func(t *testing.T) {
		count, err := repos.Listings.CountVisible(ctx, nil, now)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

// Storage-pushed and in-process visibility must agree on every listing.
func TestListingRepository_VisibilityEquivalence(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	statuses := []*string{nil}
	for _, s := range []string{core.ModerationPending, core.ModerationRejected, core.ModerationBlocked, core.ModerationRemoved, core.ModerationEnded} {
		s := s
		statuses = append(statuses, &s)
	}
	purchases := []*core.Purchase{
		nil,
		{Status: core.PurchaseStatusPaid},
		{Status: core.PurchaseStatusPending},
		{Status: core.PurchaseStatusCancelled},
	}
	auctionEnds := []*time.Time{nil, &past, &future}

	var all []*core.Listing
	i := 0
	for _, status := range statuses {
		for _, purchase := range purchases {
			for _, end := range auctionEnds {
				i++
				all = append(all, &core.Listing{
					Title:            fmt.Sprintf("listing %d", i),
					Price:            float64(i),
					ModerationStatus: status,
					Purchase:         purchase,
					IsAuction:        end != nil,
					AuctionEnd:       end,
				})
			}
		}
	}
	_, err = repos.Listings.AddListings(ctx, all...)
	require.NoError(t, err)

	found, err := repos.Listings.FindVisible(ctx, nil, now)
	require.NoError(t, err)

	storageVisible := make(map[core.ID]bool)
	for _, l := range found {
		storageVisible[l.Id] = true
	}

	for _, l := range all {
		inProcess := core.IsVisible(l, now)
		assert.Equal(t, inProcess, storageVisible[l.Id],
			"listing %q: in-process visibility %v, storage visibility %v",
			l.Title, inProcess, storageVisible[l.Id])
	}
}

func TestListingRepository_FindVisible_CancelledContext(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Listings.AddListings(context.Background(),
		&core.Listing{Title: "Stadtvelo", Price: 150})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repos.Listings.FindVisible(ctx, nil, time.Now().UTC())
	assert.Error(t, err)
}
