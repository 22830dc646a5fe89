package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateListing(t *testing.T) {
	end := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name    string
		listing *Listing
		wantErr error
	}{
		{
			name:    "valid listing",
			listing: &Listing{Title: "Rennvelo Carbon 56cm", Price: 1200},
			wantErr: nil,
		},
		{
			name:    "valid listing with ID 0",
			listing: &Listing{Id: 0, Title: "Stadtvelo", Price: 150},
			wantErr: nil,
		},
		{
			name:    "valid free listing",
			listing: &Listing{Title: "Zu verschenken", Price: 0},
			wantErr: nil,
		},
		{
			name:    "valid auction with end",
			listing: &Listing{Title: "Taschenuhr", Price: 80, IsAuction: true, AuctionEnd: &end},
			wantErr: nil,
		},
		{
			name:    "nil listing",
			listing: nil,
			wantErr: ErrInvalidListing,
		},
		{
			name:    "empty title",
			listing: &Listing{Title: "", Price: 10},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "negative price",
			listing: &Listing{Title: "bike", Price: -1},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "auction without end",
			listing: &Listing{Title: "bike", Price: 10, IsAuction: true},
			wantErr: ErrAuctionEndMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListing(tt.listing)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateListing() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateListing() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidListing) {
				t.Errorf("ValidateListing() error = %v, want wrapped ErrInvalidListing", err)
			}
		})
	}
}
