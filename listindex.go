// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package listindex

import (
	"context"
	"errors"
	"log/slog"

	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/expand"
	"github.com/occasio/listindex/index"
	"github.com/occasio/listindex/search"
	"github.com/occasio/listindex/storage"
	"github.com/occasio/listindex/storage/badger"
)

// Database wires the storage backend, the expansion dictionary, the
// document builder, and the searcher into one handle. The write path goes
// through AddListing/UpdateListing so every stored listing carries a fresh
// search document.
type Database struct {
	backend      *badger.Backend
	listingRepo  storage.ListingRepository
	categoryRepo storage.CategoryRepository
	sellerRepo   storage.SellerRepository
	bidRepo      storage.BidRepository
	dictionary   *expand.Dictionary
	expander     *expand.Expander
	builder      *index.Builder
	searcher     *search.Searcher
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	dictionaryPath string
	keywordsPath   string
	inMemory       bool
}

// WithDictionaryFile loads the expansion dictionary from an external YAML
// file instead of the embedded default.
func WithDictionaryFile(path string) DatabaseOption {
	return func(o *databaseOptions) {
		o.dictionaryPath = path
	}
}

// WithKeywordFile loads the category keyword table from an external YAML
// file instead of the embedded default.
func WithKeywordFile(path string) DatabaseOption {
	return func(o *databaseOptions) {
		o.keywordsPath = path
	}
}

// WithInMemory opens the backend in memory, discarding all data on Close.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create listing repository
	listingRepo, err := badger.NewListingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create category repository
	categoryRepo, err := badger.NewCategoryRepository(backend)
	if err != nil {
		listingRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create seller repository
	sellerRepo, err := badger.NewSellerRepository(backend)
	if err != nil {
		categoryRepo.Close()
		listingRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create bid repository
	bidRepo, err := badger.NewBidRepository(backend)
	if err != nil {
		sellerRepo.Close()
		categoryRepo.Close()
		listingRepo.Close()
		backend.Close()
		return nil, err
	}

	closeAll := func() {
		bidRepo.Close()
		sellerRepo.Close()
		categoryRepo.Close()
		listingRepo.Close()
		backend.Close()
	}

	// Load the expansion dictionary and category keyword table
	dictionary, err := loadDictionary(options.dictionaryPath)
	if err != nil {
		closeAll()
		return nil, err
	}

	keywords, err := loadKeywords(options.keywordsPath)
	if err != nil {
		closeAll()
		return nil, err
	}

	expander, err := expand.NewExpander(dictionary)
	if err != nil {
		closeAll()
		return nil, err
	}

	builder, err := index.NewBuilder(keywords)
	if err != nil {
		closeAll()
		return nil, err
	}

	searcher, err := search.NewSearcher(listingRepo, categoryRepo, sellerRepo, bidRepo, expander)
	if err != nil {
		closeAll()
		return nil, err
	}

	return &Database{
		backend:      backend,
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		sellerRepo:   sellerRepo,
		bidRepo:      bidRepo,
		dictionary:   dictionary,
		expander:     expander,
		builder:      builder,
		searcher:     searcher,
		logger:       slog.Default(),
	}, nil
}

func loadDictionary(path string) (*expand.Dictionary, error) {
	if path == "" {
		return expand.DefaultDictionary()
	}
	return expand.LoadDictionary(path)
}

func loadKeywords(path string) (*index.KeywordTable, error) {
	if path == "" {
		return index.DefaultKeywordTable()
	}
	return index.LoadKeywordTable(path)
}

func (db *Database) Close() error {
	// Close repositories
	if err := db.bidRepo.Close(); err != nil {
		db.logger.Error("error closing bid repository", "err", err)
		return err
	}
	if err := db.sellerRepo.Close(); err != nil {
		db.logger.Error("error closing seller repository", "err", err)
		return err
	}
	if err := db.categoryRepo.Close(); err != nil {
		db.logger.Error("error closing category repository", "err", err)
		return err
	}
	if err := db.listingRepo.Close(); err != nil {
		db.logger.Error("error closing listing repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// AddListing validates a listing, builds its search document, and stores
// both. The document write is synchronous with the listing write; there is
// no staleness window.
func (db *Database) AddListing(ctx context.Context, listing *core.Listing) (*core.Listing, error) {
	if err := core.ValidateListing(listing); err != nil {
		return nil, err
	}
	if err := db.buildDocument(ctx, listing); err != nil {
		return nil, err
	}
	added, err := db.listingRepo.AddListings(ctx, listing)
	if err != nil {
		return nil, err
	}
	return added[0], nil
}

// UpdateListing validates a listing, rebuilds its search document, and
// stores both.
func (db *Database) UpdateListing(ctx context.Context, listing *core.Listing) (*core.Listing, error) {
	if err := core.ValidateListing(listing); err != nil {
		return nil, err
	}
	if err := db.buildDocument(ctx, listing); err != nil {
		return nil, err
	}
	updated, err := db.listingRepo.UpdateListings(ctx, listing)
	if err != nil {
		return nil, err
	}
	return updated[0], nil
}

// RebuildDocument regenerates the search document of a stored listing, for
// when a related record (category, seller) changed underneath it.
func (db *Database) RebuildDocument(ctx context.Context, id core.ID) error {
	listing, err := db.listingRepo.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if err := db.buildDocument(ctx, listing); err != nil {
		return err
	}
	_, err = db.listingRepo.UpdateListings(ctx, listing)
	return err
}

// BuildDocument derives the search document of a listing without storing
// anything.
func (db *Database) BuildDocument(ctx context.Context, listing *core.Listing) (string, error) {
	categories, seller, err := db.listingRelations(ctx, listing)
	if err != nil {
		return "", err
	}
	return db.builder.Build(listing, categories, seller)
}

func (db *Database) buildDocument(ctx context.Context, listing *core.Listing) error {
	document, err := db.BuildDocument(ctx, listing)
	if err != nil {
		return err
	}
	listing.Document = document
	return nil
}

func (db *Database) listingRelations(ctx context.Context, listing *core.Listing) ([]*core.Category, *core.Seller, error) {
	categories, err := db.categoryRepo.GetCategories(ctx, listing.CategoryIds...)
	if err != nil {
		return nil, nil, err
	}

	var seller *core.Seller
	if listing.SellerId != 0 {
		seller, err = db.sellerRepo.GetSeller(ctx, listing.SellerId)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, nil, err
		}
	}
	return categories, seller, nil
}

// Search runs a search request against the stored listings.
func (db *Database) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	return db.searcher.Search(ctx, req)
}

// Expand exposes the query expansion for suggestion and autocomplete use.
func (db *Database) Expand(query string) *expand.Expansion {
	return db.expander.Expand(query)
}

func (db *Database) ListingRepository() storage.ListingRepository {
	return db.listingRepo
}

func (db *Database) CategoryRepository() storage.CategoryRepository {
	return db.categoryRepo
}

func (db *Database) SellerRepository() storage.SellerRepository {
	return db.sellerRepo
}

func (db *Database) BidRepository() storage.BidRepository {
	return db.bidRepo
}

func (db *Database) Searcher() *search.Searcher {
	return db.searcher
}

func (db *Database) NewReindexer(opts ...index.Option) (*index.Reindexer, error) {
	return index.NewReindexer(db.listingRepo, db.categoryRepo, db.sellerRepo, db.builder, opts...)
}
