package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

// RecipeRepository implements storage.RecipeRepository for BadgerDB.
type RecipeRepository struct {
	backend *Backend
}

var _ storage.RecipeRepository = (*RecipeRepository)(nil)

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(backend *Backend) (*RecipeRepository, error) {
	return &RecipeRepository{
		backend: backend,
	}, nil
}

// Close releases resources. RecipeRepository has no resources to release.
func (r *RecipeRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RecipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRecipes adds one or more recipes to storage.
func (r *RecipeRepository) AddRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, recipe := range recipes {
			// Use content-based ID if not set
			if recipe.Id == 0 {
				recipe.Id = core.RecipeIDFromName(recipe.Name)
			}

			// Set timestamps
			if recipe.InsertedAt.IsZero() {
				recipe.InsertedAt = time.Now().UTC()
			}
			recipe.UpdatedAt = recipe.InsertedAt

			key := makeRecipeKey(recipe.Id)
			value := storage.MarshalRecipe(recipe)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return recipes, err
}

// UpdateRecipes updates existing recipes.
func (r *RecipeRepository) UpdateRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, recipe := range recipes {
			key := makeRecipeKey(recipe.Id)

			old, err := readRecipe(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			recipe.UpdatedAt = time.Now().UTC()

			value := storage.MarshalRecipe(recipe)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return recipes, err
}

// DeleteRecipes removes recipes by their IDs.
func (r *RecipeRepository) DeleteRecipes(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecipeKey(id)

			recipe, err := readRecipe(tx, key)
			if err != nil {
				return err
			}
			if recipe == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetRecipe retrieves a single recipe by ID.
func (r *RecipeRepository) GetRecipe(ctx context.Context, id core.ID) (*core.Recipe, error) {
	var result *core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecipeKey(id)
		var err error
		result, err = readRecipe(tx, key)
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

// GetRecipes retrieves multiple recipes by their IDs.
func (r *RecipeRepository) GetRecipes(ctx context.Context, ids ...core.ID) ([]*core.Recipe, error) {
	var result []*core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecipeKey(id)
			recipe, err := readRecipe(tx, key)
			if err != nil {
				return err
			}
			if recipe != nil {
				result = append(result, recipe)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllRecipes retrieves every recipe in the corpus.
func (r *RecipeRepository) GetAllRecipes(ctx context.Context) ([]*core.Recipe, error) {
	var results []*core.Recipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(recipeRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			if !hasPrefix(key, prefix) {
				break
			}

			var recipe *core.Recipe
			err := item.Value(func(val []byte) error {
				var err error
				recipe, err = storage.UnmarshalRecipe(val)
				return err
			})
			if err != nil {
				return err
			}

			if recipe != nil {
				results = append(results, recipe)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountRecipes returns the number of recipes in the corpus.
func (r *RecipeRepository) CountRecipes(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(recipeRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			if !hasPrefix(iter.Item().Key(), prefix) {
				break
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// RankBySimilarity ranks candidate recipes by similarity to the given vector.
// A nil candidates slice ranks the whole corpus.
func (r *RecipeRepository) RankBySimilarity(ctx context.Context, vector []float32, candidates []core.ID, limit int) ([]*core.RankedRecipe, error) {
	var candidateSet map[core.ID]struct{}
	if candidates != nil {
		candidateSet = make(map[core.ID]struct{}, len(candidates))
		for _, id := range candidates {
			candidateSet[id] = struct{}{}
		}
	}

	var results []*core.RankedRecipe
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recipeRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var recipe *core.Recipe
			err := item.Value(func(val []byte) error {
				var err error
				recipe, err = storage.UnmarshalRecipe(val)
				return err
			})
			if err != nil {
				return err
			}
			if recipe == nil {
				continue
			}

			if candidateSet != nil {
				if _, ok := candidateSet[recipe.Id]; !ok {
					continue
				}
			}

			// Skip recipes without embeddings
			if len(recipe.Vector) == 0 {
				continue
			}

			results = append(results, &core.RankedRecipe{
				Recipe: recipe,
				Score:  dotProduct(vector, recipe.Vector),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.RankedRecipe) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// readRecipe reads a recipe from the transaction.
func readRecipe(tx *badger.Txn, key []byte) (*core.Recipe, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var recipe *core.Recipe
	err = item.Value(func(val []byte) error {
		var err error
		recipe, err = storage.UnmarshalRecipe(val)
		return err
	})
	return recipe, err
}
