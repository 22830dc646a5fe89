package index

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/storage"
	"github.com/panjf2000/ants/v2"
)

// reindexBatchSize is the number of listings handed to one worker.
const reindexBatchSize = 64

// Reindexer rebuilds the search documents of all stored listings. Used
// after dictionary or keyword-table edits, when stored documents no longer
// reflect what the builder would produce.
type Reindexer struct {
	listings   storage.ListingRepository
	categories storage.CategoryRepository
	sellers    storage.SellerRepository
	builder    *Builder
	pool       *ants.Pool
	logger     *slog.Logger

	// Serializes write-backs: every document write touches the shared
	// index stats record, so concurrent write transactions would conflict.
	writeMu sync.Mutex
}

// Option configures a Reindexer.
type Option func(*Reindexer) error

// WithPoolSize sets the worker pool size for concurrent rebuilds.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Reindexer) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reindexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewReindexer creates a reindex pipeline over the given repositories.
func NewReindexer(
	listings storage.ListingRepository,
	categories storage.CategoryRepository,
	sellers storage.SellerRepository,
	builder *Builder,
	opts ...Option,
) (*Reindexer, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if categories == nil {
		return nil, ErrCategoryRepositoryRequired
	}
	if sellers == nil {
		return nil, ErrSellerRepositoryRequired
	}
	if builder == nil {
		return nil, ErrBuilderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Reindexer{
		listings:   listings,
		categories: categories,
		sellers:    sellers,
		builder:    builder,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Reindex rebuilds the documents of all stored listings and persists the
// ones that changed. Returns the number of listings whose document was
// rewritten. Listings that fail to build (for example an empty title that
// predates validation) are logged and skipped, not fatal.
func (r *Reindexer) Reindex(ctx context.Context) (int, error) {
	all, err := r.listings.ListListings(ctx)
	if err != nil {
		return 0, err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rebuilt  int
		firstErr error
	)

	record := func(n int, err error) {
		mu.Lock()
		defer mu.Unlock()
		rebuilt += n
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for start := 0; start < len(all); start += reindexBatchSize {
		end := start + reindexBatchSize
		if end > len(all) {
			end = len(all)
		}
		batch := all[start:end]

		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			n, err := r.reindexBatch(ctx, batch)
			record(n, err)
		})
		if submitErr != nil {
			wg.Done()
			record(0, submitErr)
			break
		}
	}

	wg.Wait()
	return rebuilt, firstErr
}

// reindexBatch rebuilds one batch of listings, writing back only those
// whose document actually changed.
func (r *Reindexer) reindexBatch(ctx context.Context, batch []*core.Listing) (int, error) {
	var changed []*core.Listing

	for _, listing := range batch {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		categories, err := r.categories.GetCategories(ctx, listing.CategoryIds...)
		if err != nil {
			return 0, err
		}

		seller, err := r.sellers.GetSeller(ctx, listing.SellerId)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return 0, err
		}

		document, err := r.builder.Build(listing, categories, seller)
		if err != nil {
			r.logger.Warn("skipping listing during reindex",
				"listingId", listing.Id, "err", err)
			continue
		}

		if document != listing.Document {
			listing.Document = document
			changed = append(changed, listing)
		}
	}

	if len(changed) == 0 {
		return 0, nil
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if _, err := r.listings.UpdateListings(ctx, changed...); err != nil {
		return 0, err
	}
	return len(changed), nil
}

// Release releases the worker pool.
// The reindexer should not be used after calling Release.
func (r *Reindexer) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
