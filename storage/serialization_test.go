package storage

import (
	"testing"
	"time"

	"github.com/occasio/listindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("velo-bikes")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalListing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := now.Add(72 * time.Hour)
	buyNow := 1500.0
	year := 1994
	status := core.ModerationPending

	tests := []struct {
		name    string
		listing *core.Listing
	}{
		{
			name:    "minimal listing",
			listing: &core.Listing{Id: 1, Title: "Stadtvelo", Price: 150, CreatedAt: now, UpdatedAt: now},
		},
		{
			name: "full listing",
			listing: &core.Listing{
				Id:               7,
				Title:            "Rennvelo Carbon 56cm",
				Description:      "Kaum gefahren, Zustand wie neu",
				Brand:            "BMC",
				Model:            "Teammachine",
				Price:            1200,
				BuyNowPrice:      &buyNow,
				Condition:        "used",
				Reference:        "SLR01",
				Material:         "carbon",
				Movement:         "",
				Year:             &year,
				Warranty:         true,
				WarrantyText:     "2 Jahre Restgarantie",
				Images:           []string{"img/1.jpg", "img/2.jpg"},
				Boosters:         []string{"gold", "boost"},
				IsAuction:        true,
				AuctionStart:     &now,
				AuctionEnd:       &end,
				ModerationStatus: &status,
				Purchase:         &core.Purchase{Status: core.PurchaseStatusCancelled, CreatedAt: now},
				Shipping:         `{"pickup":true,"post":false}`,
				SellerId:         3,
				CategoryIds:      []core.ID{core.IDFromContent("velo-bikes")},
				Document:         "rennvelo carbon 56cm rennvelo carbon 56cm",
				CreatedAt:        now,
				UpdatedAt:        now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalListing(tt.listing)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalListing(data)
			require.NoError(t, err)
			assert.Equal(t, tt.listing, decoded)
		})
	}
}

func TestUnmarshalListing_Truncated(t *testing.T) {
	listing := &core.Listing{Id: 1, Title: "Stadtvelo", Price: 150}
	data := MarshalListing(listing)

	_, err := UnmarshalListing(data[:len(data)/2])
	assert.Error(t, err)
}

func TestMarshalUnmarshalBid(t *testing.T) {
	bid := &core.Bid{
		Id:        11,
		ListingId: 7,
		Amount:    120.50,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data := MarshalBid(bid)
	decoded, err := UnmarshalBid(data)
	require.NoError(t, err)
	assert.Equal(t, bid, decoded)
}

func TestMarshalUnmarshalCategory(t *testing.T) {
	category := &core.Category{
		Id:   core.IDFromContent("sport"),
		Name: "Sport",
		Slug: "sport",
	}

	data := MarshalCategory(category)
	decoded, err := UnmarshalCategory(data)
	require.NoError(t, err)
	assert.Equal(t, category, decoded)
}

func TestMarshalUnmarshalSeller(t *testing.T) {
	seller := &core.Seller{
		Id:         3,
		City:       "Zürich",
		PostalCode: "8004",
		Verified:   true,
	}

	data := MarshalSeller(seller)
	decoded, err := UnmarshalSeller(data)
	require.NoError(t, err)
	assert.Equal(t, seller, decoded)
}
