package badger

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mus-format/mus-go/varint"
	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/storage"
)

// BM25 parameters (standard values)
const (
	bm25K1 = 1.2  // term frequency saturation
	bm25B  = 0.75 // length normalization
)

// ListingRepository implements storage.ListingRepository for BadgerDB.
// The posting index over document tokens and the created-at index are
// maintained in the same transaction as the listing record.
type ListingRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ListingRepository = (*ListingRepository)(nil)

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(backend *Backend) (*ListingRepository, error) {
	idSeq, err := backend.GetSequence(listingIDSeq)
	if err != nil {
		return nil, err
	}

	return &ListingRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ListingRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ListingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddListings adds one or more listings to storage.
func (r *ListingRepository) AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listing := range listings {
			if listing.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				listing.Id = core.ID(nextID)
			}

			if listing.CreatedAt.IsZero() {
				listing.CreatedAt = time.Now().UTC()
			}
			listing.UpdatedAt = time.Now().UTC()

			key := makeListingKey(listing.Id)
			value := storage.MarshalListing(listing)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			createdKey := makeListingCreatedKey(listing.CreatedAt, listing.Id)
			if err := tx.Set(createdKey, storage.MarshalID(listing.Id)); err != nil {
				return err
			}

			if err := r.indexDocument(tx, listing); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return listings, err
}

// UpdateListings updates existing listings, reindexing their documents.
func (r *ListingRepository) UpdateListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listing := range listings {
			key := makeListingKey(listing.Id)

			old, err := r.readListing(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			listing.UpdatedAt = time.Now().UTC()

			value := storage.MarshalListing(listing)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			if !old.CreatedAt.Equal(listing.CreatedAt) {
				oldCreatedKey := makeListingCreatedKey(old.CreatedAt, old.Id)
				if err := tx.Delete(oldCreatedKey); err != nil {
					return err
				}
				newCreatedKey := makeListingCreatedKey(listing.CreatedAt, listing.Id)
				if err := tx.Set(newCreatedKey, storage.MarshalID(listing.Id)); err != nil {
					return err
				}
			}

			if old.Document != listing.Document {
				if err := r.deindexDocument(tx, old); err != nil {
					return err
				}
				if err := r.indexDocument(tx, listing); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return listings, err
}

// DeleteListings removes listings and all their index entries.
func (r *ListingRepository) DeleteListings(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeListingKey(id)

			listing, err := r.readListing(tx, key)
			if err != nil {
				return err
			}
			if listing == nil {
				return storage.ErrNotFound
			}

			createdKey := makeListingCreatedKey(listing.CreatedAt, listing.Id)
			if err := tx.Delete(createdKey); err != nil {
				return err
			}

			if err := r.deindexDocument(tx, listing); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetListing retrieves a single listing by ID.
func (r *ListingRepository) GetListing(ctx context.Context, id core.ID) (*core.Listing, error) {
	var result *core.Listing
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeListingKey(id)
		var err error
		result, err = r.readListing(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetListings retrieves multiple listings by their IDs.
func (r *ListingRepository) GetListings(ctx context.Context, ids ...core.ID) ([]*core.Listing, error) {
	var result []*core.Listing
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeListingKey(id)
			listing, err := r.readListing(tx, key)
			if err != nil {
				return err
			}
			if listing != nil {
				result = append(result, listing)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListListings returns every stored listing, visible or not.
func (r *ListingRepository) ListListings(ctx context.Context) ([]*core.Listing, error) {
	var results []*core.Listing

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(listingPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var listing *core.Listing
			err := iter.Item().Value(func(val []byte) error {
				var err error
				listing, err = storage.UnmarshalListing(val)
				return err
			})
			if err != nil {
				return err
			}
			if listing != nil {
				results = append(results, listing)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// FindVisible scans for listings visible at the given instant that satisfy
// all structured filters. Visibility is core.IsVisible, evaluated inside the
// scan, so this storage-pushed filter and the in-process predicate are the
// same code.
func (r *ListingRepository) FindVisible(ctx context.Context, filter *core.ListingFilter, now time.Time) ([]*core.Listing, error) {
	var results []*core.Listing

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(listingPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var listing *core.Listing
			err := iter.Item().Value(func(val []byte) error {
				var err error
				listing, err = storage.UnmarshalListing(val)
				return err
			})
			if err != nil {
				return err
			}
			if listing == nil {
				continue
			}

			if !core.IsVisible(listing, now) {
				continue
			}

			postalCode := ""
			if filter != nil && filter.PostalPrefix != "" {
				seller, err := readSeller(tx, makeSellerKey(listing.SellerId))
				if err != nil {
					return err
				}
				if seller != nil {
					postalCode = seller.PostalCode
				}
			}
			if !filter.Matches(listing, postalCode) {
				continue
			}

			results = append(results, listing)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountVisible counts the listings FindVisible would return.
func (r *ListingRepository) CountVisible(ctx context.Context, filter *core.ListingFilter, now time.Time) (int, error) {
	listings, err := r.FindVisible(ctx, filter, now)
	if err != nil {
		return 0, err
	}
	return len(listings), nil
}

// MatchTokens ranks listings whose documents contain any of the given
// tokens, BM25-scored and normalized to 0..1 within the result set.
func (r *ListingRepository) MatchTokens(ctx context.Context, tokens []string) (map[core.ID]float64, error) {
	scores := make(map[core.ID]float64)
	if len(tokens) == 0 {
		return scores, nil
	}

	seen := make(map[string]bool, len(tokens))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		docCount, totalTokens, err := readIndexStats(tx)
		if err != nil {
			return err
		}
		if docCount == 0 {
			return nil
		}
		avgDocLen := float64(totalTokens) / float64(docCount)
		if avgDocLen <= 0 {
			avgDocLen = 1
		}

		for _, token := range tokens {
			if seen[token] {
				continue
			}
			seen[token] = true

			if err := ctx.Err(); err != nil {
				return err
			}

			type posting struct {
				id     core.ID
				tf     int
				docLen int
			}
			var postings []posting

			opts := badger.DefaultIteratorOptions
			opts.Prefix = makePartialTokenKey(token)
			iter := tx.NewIterator(opts)
			for iter.Rewind(); iter.Valid(); iter.Next() {
				id := listingIDFromTokenKey(iter.Item().Key())
				var tf, docLen int
				err := iter.Item().Value(func(val []byte) error {
					var err error
					tf, docLen, err = unmarshalPosting(val)
					return err
				})
				if err != nil {
					iter.Close()
					return err
				}
				postings = append(postings, posting{id: id, tf: tf, docLen: docLen})
			}
			iter.Close()

			if len(postings) == 0 {
				continue
			}

			df := float64(len(postings))
			idf := math.Log(1 + (float64(docCount)-df+0.5)/(df+0.5))
			for _, p := range postings {
				tf := float64(p.tf)
				norm := 1 - bm25B + bm25B*float64(p.docLen)/avgDocLen
				scores[p.id] += idf * tf * (bm25K1 + 1) / (tf + bm25K1*norm)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	var max float64
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max > 0 {
		for id := range scores {
			scores[id] /= max
		}
	}

	return scores, nil
}

// Helper methods

// readListing reads a listing record from the transaction.
func (r *ListingRepository) readListing(tx *badger.Txn, key []byte) (*core.Listing, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var listing *core.Listing
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		listing, unmarshalErr = storage.UnmarshalListing(val)
		return unmarshalErr
	})
	return listing, err
}

// documentTerms computes term frequencies and the token count of a document.
// Documents are stored normalized, so splitting on spaces is enough.
func documentTerms(document string) (map[string]int, int) {
	fields := strings.Fields(document)
	terms := make(map[string]int, len(fields))
	count := 0
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		terms[f]++
		count++
	}
	return terms, count
}

// indexDocument adds posting entries for a listing's document and bumps the
// index stats.
func (r *ListingRepository) indexDocument(tx *badger.Txn, listing *core.Listing) error {
	terms, docLen := documentTerms(listing.Document)
	for term, tf := range terms {
		key := makeTokenKey(term, listing.Id)
		if err := tx.Set(key, marshalPosting(tf, docLen)); err != nil {
			return err
		}
	}
	if docLen == 0 {
		return nil
	}
	return adjustIndexStats(tx, 1, docLen)
}

// deindexDocument removes posting entries for a listing's document and
// adjusts the index stats.
func (r *ListingRepository) deindexDocument(tx *badger.Txn, listing *core.Listing) error {
	terms, docLen := documentTerms(listing.Document)
	for term := range terms {
		key := makeTokenKey(term, listing.Id)
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	if docLen == 0 {
		return nil
	}
	return adjustIndexStats(tx, -1, -docLen)
}

// Posting values hold the term frequency and the document token count.

func marshalPosting(tf, docLen int) []byte {
	buf := make([]byte, varint.Int.Size(tf)+varint.Int.Size(docLen))
	n := varint.Int.Marshal(tf, buf)
	varint.Int.Marshal(docLen, buf[n:])
	return buf
}

func unmarshalPosting(data []byte) (tf, docLen int, err error) {
	tf, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return 0, 0, err
	}
	docLen, _, err = varint.Int.Unmarshal(data[n:])
	return tf, docLen, err
}

// Index stats hold the indexed document count and total token count,
// the corpus-wide numbers BM25 needs.

func readIndexStats(tx *badger.Txn) (docCount, totalTokens int, err error) {
	item, err := tx.Get([]byte(indexStatsKey))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	err = item.Value(func(val []byte) error {
		var n int
		var err error
		docCount, n, err = varint.Int.Unmarshal(val)
		if err != nil {
			return err
		}
		totalTokens, _, err = varint.Int.Unmarshal(val[n:])
		return err
	})
	return docCount, totalTokens, err
}

func adjustIndexStats(tx *badger.Txn, docDelta, tokenDelta int) error {
	docCount, totalTokens, err := readIndexStats(tx)
	if err != nil {
		return err
	}
	docCount += docDelta
	totalTokens += tokenDelta
	if docCount < 0 {
		docCount = 0
	}
	if totalTokens < 0 {
		totalTokens = 0
	}
	buf := make([]byte, varint.Int.Size(docCount)+varint.Int.Size(totalTokens))
	n := varint.Int.Marshal(docCount, buf)
	varint.Int.Marshal(totalTokens, buf[n:])
	return tx.Set([]byte(indexStatsKey), buf)
}
