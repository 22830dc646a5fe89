package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/storage"
)

// SellerRepository implements storage.SellerRepository for BadgerDB.
type SellerRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SellerRepository = (*SellerRepository)(nil)

// NewSellerRepository creates a new SellerRepository.
func NewSellerRepository(backend *Backend) (*SellerRepository, error) {
	idSeq, err := backend.GetSequence(sellerIDSeq)
	if err != nil {
		return nil, err
	}

	return &SellerRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *SellerRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *SellerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSellers adds one or more sellers to storage.
func (r *SellerRepository) AddSellers(ctx context.Context, sellers ...*core.Seller) ([]*core.Seller, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, seller := range sellers {
			if seller.Id == 0 {
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
				seller.Id = core.ID(nextID)
			}

			key := makeSellerKey(seller.Id)
			value := storage.MarshalSeller(seller)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return sellers, err
}

// GetSeller retrieves a single seller by ID.
func (r *SellerRepository) GetSeller(ctx context.Context, id core.ID) (*core.Seller, error) {
	var result *core.Seller
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readSeller(tx, makeSellerKey(id))
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

// GetSellers retrieves multiple sellers by their IDs.
func (r *SellerRepository) GetSellers(ctx context.Context, ids ...core.ID) ([]*core.Seller, error) {
	var result []*core.Seller
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			seller, err := readSeller(tx, makeSellerKey(id))
			if err != nil {
				return err
			}
			if seller != nil {
				result = append(result, seller)
			}
		}
		return nil
	}, false)
	return result, err
}

// readSeller reads a seller record from the transaction.
func readSeller(tx *badger.Txn, key []byte) (*core.Seller, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var seller *core.Seller
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		seller, unmarshalErr = storage.UnmarshalSeller(val)
		return unmarshalErr
	})
	return seller, err
}
