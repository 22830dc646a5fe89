package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/storage"
)

// BidRepository implements storage.BidRepository for BadgerDB.
type BidRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.BidRepository = (*BidRepository)(nil)

// NewBidRepository creates a new BidRepository.
func NewBidRepository(backend *Backend) (*BidRepository, error) {
	idSeq, err := backend.GetSequence(bidIDSeq)
	if err != nil {
		return nil, err
	}

	return &BidRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *BidRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *BidRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddBids adds one or more bids to storage.
func (r *BidRepository) AddBids(ctx context.Context, bids ...*core.Bid) ([]*core.Bid, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, bid := range bids {
			if bid.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				bid.Id = core.ID(nextID)
			}

			if bid.CreatedAt.IsZero() {
				bid.CreatedAt = time.Now().UTC()
			}

			key := makeBidKey(bid.Id)
			value := storage.MarshalBid(bid)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			listingKey := makeBidListingKey(bid.ListingId, bid.Id)
			if err := tx.Set(listingKey, storage.MarshalID(bid.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return bids, err
}

// GetBidsForListing retrieves all bids against a listing.
func (r *BidRepository) GetBidsForListing(ctx context.Context, listingId core.ID) ([]*core.Bid, error) {
	byListing, err := r.GetBidsForListings(ctx, listingId)
	if err != nil {
		return nil, err
	}
	return byListing[listingId], nil
}

// GetBidsForListings bulk-fetches bids for a set of listings.
func (r *BidRepository) GetBidsForListings(ctx context.Context, listingIds ...core.ID) (map[core.ID][]*core.Bid, error) {
	result := make(map[core.ID][]*core.Bid)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listingId := range listingIds {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = makePartialBidListingKey(listingId)
			iter := tx.NewIterator(opts)

			var bidIds []core.ID
			for iter.Rewind(); iter.Valid(); iter.Next() {
				var bidId core.ID
				err := iter.Item().Value(func(val []byte) error {
					var err error
					bidId, err = storage.UnmarshalID(val)
					return err
				})
				if err != nil {
					iter.Close()
					return err
				}
				bidIds = append(bidIds, bidId)
			}
			iter.Close()

			for _, bidId := range bidIds {
				bid, err := readBid(tx, makeBidKey(bidId))
				if err != nil {
					return err
				}
				if bid != nil {
					result[listingId] = append(result[listingId], bid)
				}
			}
		}
		return nil
	}, false)
	return result, err
}

// GetBidCounts returns the number of bids per listing.
func (r *BidRepository) GetBidCounts(ctx context.Context, listingIds ...core.ID) (map[core.ID]int, error) {
	result := make(map[core.ID]int)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listingId := range listingIds {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			opts.Prefix = makePartialBidListingKey(listingId)
			iter := tx.NewIterator(opts)

			count := 0
			for iter.Rewind(); iter.Valid(); iter.Next() {
				count++
			}
			iter.Close()

			result[listingId] = count
		}
		return nil
	}, false)
	return result, err
}

// readBid reads a bid record from the transaction.
func readBid(tx *badger.Txn, key []byte) (*core.Bid, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var bid *core.Bid
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		bid, unmarshalErr = storage.UnmarshalBid(val)
		return unmarshalErr
	})
	return bid, err
}
