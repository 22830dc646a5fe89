package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_AddAndLookup(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	sport := &core.Category{Name: "Sport", Slug: "sport"}
	watches := &core.Category{Name: "Uhren", Slug: "uhren"}
	added, err := repos.Categories.AddCategories(ctx, sport, watches)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, core.IDFromContent("sport"), sport.Id)

	got, err := repos.Categories.GetCategory(ctx, sport.Id)
	require.NoError(t, err)
	assert.Equal(t, "Sport", got.Name)

	bySlug, err := repos.Categories.GetCategoryBySlug(ctx, "uhren")
	require.NoError(t, err)
	assert.Equal(t, watches.Id, bySlug.Id)

	all, err := repos.Categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCategoryRepository_SeedingIsIdempotent(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Categories.AddCategories(ctx, &core.Category{Name: "Sport", Slug: "sport"})
	require.NoError(t, err)
	_, err = repos.Categories.AddCategories(ctx, &core.Category{Name: "Sport", Slug: "sport"})
	require.NoError(t, err)

	all, err := repos.Categories.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCategoryRepository_MissingSlug(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Categories.GetCategoryBySlug(context.Background(), "nope")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestBidRepository_PerListingIndex(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()

	bids := []*core.Bid{
		{ListingId: 1, Amount: 100},
		{ListingId: 1, Amount: 120},
		{ListingId: 2, Amount: 55},
	}
	_, err = repos.Bids.AddBids(ctx, bids...)
	require.NoError(t, err)

	forOne, err := repos.Bids.GetBidsForListing(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, forOne, 2)

	byListing, err := repos.Bids.GetBidsForListings(ctx, 1, 2, 3)
	require.NoError(t, err)
	assert.Len(t, byListing[1], 2)
	assert.Len(t, byListing[2], 1)
	assert.Empty(t, byListing[3])

	counts, err := repos.Bids.GetBidCounts(ctx, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[1])
	assert.Equal(t, 1, counts[2])
	assert.Equal(t, 0, counts[3])
}
