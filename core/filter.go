package core

import (
	"fmt"
	"strings"
)

// ListingFilter holds the structured search filters. All fields are optional;
// the zero value matches every listing. Filters are hard predicates: a
// listing failing any of them is out, regardless of text relevance.
type ListingFilter struct {
	CategoryId   *ID
	MinPrice     *float64
	MaxPrice     *float64
	Condition    string
	Brand        string
	OnlyAuctions bool
	PostalPrefix string
	SellerId     *ID
}

// Validate rejects malformed filter values before any storage query runs.
func (f *ListingFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("%w: min price %v is negative", ErrInvalidFilter, *f.MinPrice)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: max price %v is negative", ErrInvalidFilter, *f.MaxPrice)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: min price %v above max price %v", ErrInvalidFilter, *f.MinPrice, *f.MaxPrice)
	}
	return nil
}

// Matches reports whether a listing satisfies all structured filters.
// postalCode is the owning seller's postal code, consulted only when a
// postal prefix filter is set.
func (f *ListingFilter) Matches(l *Listing, postalCode string) bool {
	if f == nil {
		return true
	}
	if f.CategoryId != nil {
		found := false
		for _, id := range l.CategoryIds {
			if id == *f.CategoryId {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.Condition != "" && l.Condition != f.Condition {
		return false
	}
	if f.Brand != "" && Normalize(l.Brand) != Normalize(f.Brand) {
		return false
	}
	if f.OnlyAuctions && !l.IsAuction {
		return false
	}
	if f.PostalPrefix != "" && !strings.HasPrefix(postalCode, f.PostalPrefix) {
		return false
	}
	if f.SellerId != nil && l.SellerId != *f.SellerId {
		return false
	}
	return true
}
