package search

import (
	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/expand"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterExpansion(expansion *expand.Expansion)
	AfterVisibleScan(count int)
	LexicalHit(listing *core.Listing, rank float64)
	FuzzyHit(listing *core.Listing, similarity float64)
	SubstringHit(listing *core.Listing)
	CandidateScored(listing *core.Listing, score float64)
	Finish(results []*Result, total int)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) AfterExpansion(_ *expand.Expansion)         {}
func (n *noopMonitor) AfterVisibleScan(_ int)                     {}
func (n *noopMonitor) LexicalHit(_ *core.Listing, _ float64)      {}
func (n *noopMonitor) FuzzyHit(_ *core.Listing, _ float64)        {}
func (n *noopMonitor) SubstringHit(_ *core.Listing)               {}
func (n *noopMonitor) CandidateScored(_ *core.Listing, _ float64) {}
func (n *noopMonitor) Finish(_ []*Result, _ int)                  {}
