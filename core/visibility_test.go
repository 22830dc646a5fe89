package core

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestIsVisible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		listing *Listing
		want    bool
	}{
		{
			name:    "nil listing",
			listing: nil,
			want:    false,
		},
		{
			name:    "plain listing, no status",
			listing: &Listing{Title: "bike"},
			want:    true,
		},
		{
			name:    "pending moderation stays visible",
			listing: &Listing{Title: "bike", ModerationStatus: strPtr(ModerationPending)},
			want:    true,
		},
		{
			name:    "blocked listing hidden",
			listing: &Listing{Title: "bike", ModerationStatus: strPtr(ModerationBlocked)},
			want:    false,
		},
		{
			name:    "rejected listing hidden",
			listing: &Listing{Title: "bike", ModerationStatus: strPtr(ModerationRejected)},
			want:    false,
		},
		{
			name:    "sold listing hidden",
			listing: &Listing{Title: "bike", Purchase: &Purchase{Status: PurchaseStatusPaid}},
			want:    false,
		},
		{
			name:    "cancelled purchase re-lists",
			listing: &Listing{Title: "bike", Purchase: &Purchase{Status: PurchaseStatusCancelled}},
			want:    true,
		},
		{
			name:    "running auction visible",
			listing: &Listing{Title: "bike", IsAuction: true, AuctionEnd: &future},
			want:    true,
		},
		{
			name:    "expired auction hidden",
			listing: &Listing{Title: "bike", IsAuction: true, AuctionEnd: &past},
			want:    false,
		},
		{
			name: "expired auction with sale still hidden",
			listing: &Listing{
				Title:      "bike",
				IsAuction:  true,
				AuctionEnd: &past,
				Purchase:   &Purchase{Status: PurchaseStatusPaid},
			},
			want: false,
		},
		{
			name:    "auction ending exactly now hidden",
			listing: &Listing{Title: "bike", IsAuction: true, AuctionEnd: &now},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVisible(tt.listing, now); got != tt.want {
				t.Errorf("IsVisible() = %v, want %v", got, tt.want)
			}
		})
	}
}
