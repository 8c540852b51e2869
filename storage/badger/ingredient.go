package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

// IngredientRepository implements storage.IngredientRepository for BadgerDB.
type IngredientRepository struct {
	backend *Backend
}

var _ storage.IngredientRepository = (*IngredientRepository)(nil)

// NewIngredientRepository creates a new IngredientRepository.
func NewIngredientRepository(backend *Backend) (*IngredientRepository, error) {
	return &IngredientRepository{
		backend: backend,
	}, nil
}

// Close releases resources. IngredientRepository has no resources to release.
func (r *IngredientRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *IngredientRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddIngredients adds one or more canonical ingredients to storage.
// Each ingredient is indexed under its canonical name and every variant.
func (r *IngredientRepository) AddIngredients(ctx context.Context, ingredients ...*core.CanonicalIngredient) ([]*core.CanonicalIngredient, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, ingredient := range ingredients {
			// Use content-based ID if not set
			if ingredient.Id == 0 {
				ingredient.Id = core.IngredientIDFromName(ingredient.Name)
			}

			// Set timestamps
			if ingredient.InsertedAt.IsZero() {
				ingredient.InsertedAt = time.Now().UTC()
			}
			ingredient.UpdatedAt = ingredient.InsertedAt

			// Store primary record
			key := makeIngredientKey(ingredient.Id)
			value := storage.MarshalIngredient(ingredient)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store variant index entries
			if err := writeVariantIndex(tx, ingredient); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return ingredients, err
}

// UpdateIngredients updates existing ingredients.
func (r *IngredientRepository) UpdateIngredients(ctx context.Context, ingredients ...*core.CanonicalIngredient) ([]*core.CanonicalIngredient, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, ingredient := range ingredients {
			key := makeIngredientKey(ingredient.Id)

			old, err := readIngredient(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			ingredient.UpdatedAt = time.Now().UTC()

			value := storage.MarshalIngredient(ingredient)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Rebuild variant index: drop stale entries, write current ones
			if err := deleteVariantIndex(tx, old); err != nil {
				return err
			}
			if err := writeVariantIndex(tx, ingredient); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return ingredients, err
}

// DeleteIngredients removes ingredients by their IDs.
func (r *IngredientRepository) DeleteIngredients(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeIngredientKey(id)

			ingredient, err := readIngredient(tx, key)
			if err != nil {
				return err
			}
			if ingredient == nil {
				return storage.ErrNotFound
			}

			if err := deleteVariantIndex(tx, ingredient); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetIngredient retrieves a single ingredient by ID.
func (r *IngredientRepository) GetIngredient(ctx context.Context, id core.ID) (*core.CanonicalIngredient, error) {
	var result *core.CanonicalIngredient
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeIngredientKey(id)
		var err error
		result, err = readIngredient(tx, key)
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

// GetIngredients retrieves multiple ingredients by their IDs.
func (r *IngredientRepository) GetIngredients(ctx context.Context, ids ...core.ID) ([]*core.CanonicalIngredient, error) {
	var result []*core.CanonicalIngredient
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeIngredientKey(id)
			ingredient, err := readIngredient(tx, key)
			if err != nil {
				return err
			}
			if ingredient != nil {
				result = append(result, ingredient)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllIngredients retrieves the full canonical ingredient vocabulary.
func (r *IngredientRepository) GetAllIngredients(ctx context.Context) ([]*core.CanonicalIngredient, error) {
	var results []*core.CanonicalIngredient
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(ingredientRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			if !hasPrefix(key, prefix) {
				break
			}

			var ingredient *core.CanonicalIngredient
			err := item.Value(func(val []byte) error {
				var err error
				ingredient, err = storage.UnmarshalIngredient(val)
				return err
			})
			if err != nil {
				return err
			}

			if ingredient != nil {
				results = append(results, ingredient)
			}
		}
		return nil
	}, false)

	return results, err
}

// FindIngredientByVariant finds the canonical ingredient claiming the variant.
func (r *IngredientRepository) FindIngredientByVariant(ctx context.Context, variant string) (*core.CanonicalIngredient, error) {
	var result *core.CanonicalIngredient
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Look up ID from variant index
		variantKey := makeVariantKey(variant)
		item, err := tx.Get(variantKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var ingredientID core.ID
		err = item.Value(func(val []byte) error {
			ingredientID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		// Look up full ingredient
		ingredientKey := makeIngredientKey(ingredientID)
		result, err = readIngredient(tx, ingredientKey)
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

// FindSimilarIngredient finds the ingredient most similar to the given vector.
// Returns ErrNotFound if nothing reaches minSimilarity.
func (r *IngredientRepository) FindSimilarIngredient(ctx context.Context, vector []float32, minSimilarity float32) (*core.CanonicalIngredient, float32, error) {
	var best *core.CanonicalIngredient
	var bestScore float32

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(ingredientRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var ingredient *core.CanonicalIngredient
			err := item.Value(func(val []byte) error {
				var err error
				ingredient, err = storage.UnmarshalIngredient(val)
				return err
			})
			if err != nil {
				return err
			}
			if ingredient == nil || len(ingredient.Vector) == 0 {
				continue
			}

			score := dotProduct(vector, ingredient.Vector)
			if score >= minSimilarity && (best == nil || score > bestScore) {
				best = ingredient
				bestScore = score
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, 0, err
	}
	if best == nil {
		return nil, 0, storage.ErrNotFound
	}
	return best, bestScore, nil
}

// writeVariantIndex indexes an ingredient under its canonical name and variants.
func writeVariantIndex(tx *badger.Txn, ingredient *core.CanonicalIngredient) error {
	idValue := storage.MarshalID(ingredient.Id)
	if err := tx.Set(makeVariantKey(ingredient.Name), idValue); err != nil {
		return err
	}
	for _, variant := range ingredient.Variants {
		if err := tx.Set(makeVariantKey(variant), idValue); err != nil {
			return err
		}
	}
	return nil
}

// deleteVariantIndex removes an ingredient's variant index entries.
func deleteVariantIndex(tx *badger.Txn, ingredient *core.CanonicalIngredient) error {
	if err := tx.Delete(makeVariantKey(ingredient.Name)); err != nil {
		return err
	}
	for _, variant := range ingredient.Variants {
		if err := tx.Delete(makeVariantKey(variant)); err != nil {
			return err
		}
	}
	return nil
}

// readIngredient reads an ingredient from the transaction.
func readIngredient(tx *badger.Txn, key []byte) (*core.CanonicalIngredient, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var ingredient *core.CanonicalIngredient
	err = item.Value(func(val []byte) error {
		var err error
		ingredient, err = storage.UnmarshalIngredient(val)
		return err
	})
	return ingredient, err
}
