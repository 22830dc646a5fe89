package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/storage"
)

// CategoryRepository implements storage.CategoryRepository for BadgerDB.
type CategoryRepository struct {
	backend *Backend
}

var _ storage.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(backend *Backend) (*CategoryRepository, error) {
	return &CategoryRepository{
		backend: backend,
	}, nil
}

// Close releases resources. CategoryRepository has no resources to release.
func (r *CategoryRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CategoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCategories adds one or more categories to storage.
func (r *CategoryRepository) AddCategories(ctx context.Context, categories ...*core.Category) ([]*core.Category, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, category := range categories {
			// Use content-based ID so reseeding the same slug is idempotent
			if category.Id == 0 {
				category.Id = core.IDFromContent(category.Slug)
			}

			key := makeCategoryKey(category.Id)
			value := storage.MarshalCategory(category)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			slugKey := makeCategorySlugKey(category.Slug)
			if err := tx.Set(slugKey, storage.MarshalID(category.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return categories, err
}

// GetCategory retrieves a single category by ID.
func (r *CategoryRepository) GetCategory(ctx context.Context, id core.ID) (*core.Category, error) {
	var result *core.Category
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readCategory(tx, makeCategoryKey(id))
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

// GetCategories retrieves multiple categories by their IDs.
func (r *CategoryRepository) GetCategories(ctx context.Context, ids ...core.ID) ([]*core.Category, error) {
	var result []*core.Category
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			category, err := readCategory(tx, makeCategoryKey(id))
			if err != nil {
				return err
			}
			if category != nil {
				result = append(result, category)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetCategoryBySlug finds a category by its stable slug.
func (r *CategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*core.Category, error) {
	var result *core.Category
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCategorySlugKey(slug))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readCategory(tx, makeCategoryKey(id))
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

// ListCategories returns all categories.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]*core.Category, error) {
	var results []*core.Category
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(categoryPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var category *core.Category
			err := iter.Item().Value(func(val []byte) error {
				var err error
				category, err = storage.UnmarshalCategory(val)
				return err
			})
			if err != nil {
				return err
			}
			if category != nil {
				results = append(results, category)
			}
		}
		return nil
	}, false)
	return results, err
}

// readCategory reads a category record from the transaction.
func readCategory(tx *badger.Txn, key []byte) (*core.Category, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var category *core.Category
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		category, unmarshalErr = storage.UnmarshalCategory(val)
		return unmarshalErr
	})
	return category, err
}
