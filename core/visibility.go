package core

import "time"

// hiddenStatuses are the terminal-negative moderation states. A listing in
// any of them never appears in search results. "pending" is deliberately
// absent: a listing awaiting review is searchable, the same as one with no
// status at all.
var hiddenStatuses = map[string]bool{
	ModerationRejected: true,
	ModerationBlocked:  true,
	ModerationRemoved:  true,
	ModerationEnded:    true,
}

// IsVisible reports whether a listing is eligible to appear in search
// results at the given instant. All conditions must hold:
//
//   - the moderation status is absent or not terminal-negative
//   - no active (non-cancelled) purchase exists against the listing
//   - the auction, if timed, has not yet ended
//
// An expired auction that concluded in a sale is already excluded by the
// purchase rule; the expiry rule never re-includes it.
//
// The storage layer pushes this same function into its scans, so the
// storage-evaluated and in-process answers cannot diverge.
func IsVisible(l *Listing, now time.Time) bool {
	if l == nil {
		return false
	}
	if l.ModerationStatus != nil && hiddenStatuses[*l.ModerationStatus] {
		return false
	}
	if l.Purchase != nil && l.Purchase.Status != PurchaseStatusCancelled {
		return false
	}
	if l.AuctionEnd != nil && !l.AuctionEnd.After(now) {
		return false
	}
	return true
}
