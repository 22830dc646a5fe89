package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/expand"
	"github.com/occasio/listindex/index"
	"github.com/occasio/listindex/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// fuzzyThreshold is the minimum trigram similarity between the fuzzy
	// probe and a document for the fuzzy branch of the match condition.
	fuzzyThreshold = 0.15

	// defaultLimit is the page size when the request does not set one.
	defaultLimit = 30
)

// Request is a search request. Query may be empty, in which case only the
// structured filters apply. The zero Sort means relevance for text queries
// and creation time descending for filter-only requests.
type Request struct {
	Query  string
	Filter *core.ListingFilter
	Sort   Sort
	Limit  int
	Offset int
}

// Result is one enriched search hit.
type Result struct {
	Listing *core.Listing
	Score   float64
	Tier    core.BoosterTier

	// CurrentPrice is the highest bid if any bid exists, else the base
	// price. Substituted at assembly time, never stored.
	CurrentPrice  float64
	Bids          []*core.Bid
	BidCount      int
	Seller        *core.Seller
	CategorySlugs []string
}

// Response is a ranked, paginated result page.
type Response struct {
	Results []*Result
	Total   int
	Limit   int
	Offset  int

	// Suggestions and DidYouMean carry the expander's typo corrections,
	// empty for filter-only requests.
	Suggestions []string
	DidYouMean  string
}

// candidate is a listing that passed the hard and soft filters, carrying
// its ranking signals until enrichment.
type candidate struct {
	listing  *core.Listing
	score    float64
	tier     core.BoosterTier
	bidCount int
}

// Searcher is the read entry point over listings. Stateless per request;
// one Searcher serves all concurrent callers.
type Searcher struct {
	listings   storage.ListingRepository
	categories storage.CategoryRepository
	sellers    storage.SellerRepository
	bids       storage.BidRepository
	expander   *expand.Expander
	scorer     Scorer
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithScorer overrides the scoring weights. Default is DefaultScorer.
func WithScorer(scorer Scorer) Option {
	return func(s *Searcher) error {
		s.scorer = scorer
		return nil
	}
}

// WithClock overrides the time source used for visibility checks.
// Default is time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) error {
		if now == nil {
			now = time.Now
		}
		s.now = now
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	listings storage.ListingRepository,
	categories storage.CategoryRepository,
	sellers storage.SellerRepository,
	bids storage.BidRepository,
	expander *expand.Expander,
	opts ...Option,
) (*Searcher, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if categories == nil {
		return nil, ErrCategoryRepositoryRequired
	}
	if sellers == nil {
		return nil, ErrSellerRepositoryRequired
	}
	if bids == nil {
		return nil, ErrBidRepositoryRequired
	}
	if expander == nil {
		return nil, ErrExpanderRequired
	}

	s := &Searcher{
		listings:   listings,
		categories: categories,
		sellers:    sellers,
		bids:       bids,
		expander:   expander,
		scorer:     DefaultScorer(),
		now:        time.Now,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Expand exposes the query expansion on its own, for suggestion and
// autocomplete use. Never fails.
func (s *Searcher) Expand(query string) *expand.Expansion {
	return s.expander.Expand(query)
}

// Search runs a search request and returns the ranked page.
func (s *Searcher) Search(ctx context.Context, req *Request) (*Response, error) {
	return s.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor runs a search request with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req *Request, monitor SearchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if req == nil {
		req = &Request{}
	}

	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	if err := req.Sort.validate(); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	monitor.Start(req.Query)
	now := s.now()

	visible, err := s.listings.FindVisible(ctx, req.Filter, now)
	if err != nil {
		s.logger.Error("error scanning visible listings", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrSearchUnavailable, err)
	}
	monitor.AfterVisibleScan(len(visible))

	normalized := core.Normalize(req.Query)
	sortSpec := req.Sort

	var candidates []*candidate
	var expansion *expand.Expansion

	if normalized == "" {
		if sortSpec.Field == "" {
			sortSpec = Sort{Field: SortCreatedAt, Descending: true}
		}
		candidates = make([]*candidate, 0, len(visible))
		for _, listing := range visible {
			candidates = append(candidates, &candidate{
				listing: listing,
				tier:    listing.Tier(),
			})
		}
	} else {
		expansion = s.expander.Expand(req.Query)
		monitor.AfterExpansion(expansion)

		candidates, err = s.matchCandidates(ctx, visible, normalized, expansion, monitor)
		if err != nil {
			return nil, err
		}
	}

	if sortSpec.Field == SortBids {
		if err := s.loadBidCounts(ctx, candidates); err != nil {
			return nil, err
		}
	}

	orderCandidates(candidates, sortSpec)

	total := len(candidates)
	page := paginate(candidates, offset, limit)

	results, err := s.enrich(ctx, page)
	if err != nil {
		s.logger.Error("error enriching results", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrSearchUnavailable, err)
	}

	resp := &Response{
		Results: results,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	if expansion != nil {
		resp.Suggestions = expansion.Suggestions
		resp.DidYouMean = expansion.DidYouMean
	}

	monitor.Finish(results, total)
	return resp, nil
}

// matchCandidates applies the soft match condition and scores the listings
// that pass. A listing is a candidate if any of the three branches holds:
// a posting-index hit, trigram similarity above the threshold, or the
// normalized query appearing as a substring of title, brand, or model.
func (s *Searcher) matchCandidates(
	ctx context.Context,
	visible []*core.Listing,
	normalized string,
	expansion *expand.Expansion,
	monitor SearchMonitor,
) ([]*candidate, error) {
	ranks, err := s.listings.MatchTokens(ctx, expansion.LexicalTokens)
	if err != nil {
		s.logger.Error("error matching expanded tokens", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrSearchUnavailable, err)
	}

	probe := index.NewTrigramSet(expansion.FuzzyProbe)

	var candidates []*candidate
	for _, listing := range visible {
		in := ScoreInputs{Tier: listing.Tier()}
		matched := false

		if rank := ranks[listing.Id]; rank > 0 {
			in.LexicalRank = rank
			matched = true
			monitor.LexicalHit(listing, rank)
		}

		if len(probe) > 0 {
			similarity := probe.Similarity(index.NewTrigramSet(listing.Document))
			in.FuzzySimilarity = similarity
			if similarity >= fuzzyThreshold {
				matched = true
				monitor.FuzzyHit(listing, similarity)
			}
		}

		in.TitleContains = strings.Contains(core.Normalize(listing.Title), normalized)
		in.BrandContains = strings.Contains(core.Normalize(listing.Brand), normalized)
		modelContains := strings.Contains(core.Normalize(listing.Model), normalized)
		if in.TitleContains || in.BrandContains || modelContains {
			if !matched {
				monitor.SubstringHit(listing)
			}
			matched = true
		}

		if !matched {
			continue
		}

		score := s.scorer.Score(in)
		monitor.CandidateScored(listing, score)
		candidates = append(candidates, &candidate{
			listing: listing,
			score:   score,
			tier:    in.Tier,
		})
	}

	return candidates, nil
}

// loadBidCounts fills in the bid count of every candidate, needed before
// ordering when sorting by bids.
func (s *Searcher) loadBidCounts(ctx context.Context, candidates []*candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	ids := make([]core.ID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.listing.Id
	}

	counts, err := s.bids.GetBidCounts(ctx, ids...)
	if err != nil {
		s.logger.Error("error counting bids", "err", err)
		return fmt.Errorf("%w: %w", core.ErrSearchUnavailable, err)
	}

	for _, c := range candidates {
		c.bidCount = counts[c.listing.Id]
	}
	return nil
}

// paginate slices the ordered candidate list to the requested page.
func paginate(candidates []*candidate, offset, limit int) []*candidate {
	if offset >= len(candidates) {
		return nil
	}
	end := offset + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[offset:end]
}

// enrich assembles the final results for one page: seller display fields,
// category slugs, and bids, fetched in bulk with the three fetches running
// concurrently. Current price substitution happens here, after ranking.
func (s *Searcher) enrich(ctx context.Context, page []*candidate) ([]*Result, error) {
	results := make([]*Result, 0, len(page))
	if len(page) == 0 {
		return results, nil
	}

	listingIds := make([]core.ID, 0, len(page))
	sellerIdSet := make(map[core.ID]bool)
	categoryIdSet := make(map[core.ID]bool)
	for _, c := range page {
		listingIds = append(listingIds, c.listing.Id)
		if c.listing.SellerId != 0 {
			sellerIdSet[c.listing.SellerId] = true
		}
		for _, id := range c.listing.CategoryIds {
			categoryIdSet[id] = true
		}
	}

	var (
		sellers    []*core.Seller
		categories []*core.Category
		bidsByID   map[core.ID][]*core.Bid
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sellers, err = s.sellers.GetSellers(gctx, idSetSlice(sellerIdSet)...)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.GetCategories(gctx, idSetSlice(categoryIdSet)...)
		return err
	})
	g.Go(func() error {
		var err error
		bidsByID, err = s.bids.GetBidsForListings(gctx, listingIds...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sellerByID := make(map[core.ID]*core.Seller, len(sellers))
	for _, seller := range sellers {
		sellerByID[seller.Id] = seller
	}
	categoryByID := make(map[core.ID]*core.Category, len(categories))
	for _, category := range categories {
		categoryByID[category.Id] = category
	}

	for _, c := range page {
		bids := bidsByID[c.listing.Id]

		var slugs []string
		for _, id := range c.listing.CategoryIds {
			if category, ok := categoryByID[id]; ok {
				slugs = append(slugs, category.Slug)
			}
		}

		results = append(results, &Result{
			Listing:       c.listing,
			Score:         c.score,
			Tier:          c.tier,
			CurrentPrice:  c.listing.CurrentPrice(bids),
			Bids:          bids,
			BidCount:      len(bids),
			Seller:        sellerByID[c.listing.SellerId],
			CategorySlugs: slugs,
		})
	}
	return results, nil
}

func idSetSlice(set map[core.ID]bool) []core.ID {
	ids := make([]core.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
