package storage

import (
	"context"

	"github.com/tastegraph/recipechat/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RecipeRepository provides operations for managing the recipe corpus.
type RecipeRepository interface {
	Repository
	// AddRecipes adds one or more recipes to storage.
	// For recipes with Id=0, derives content-based IDs from the name.
	// Sets InsertedAt timestamp if not already set.
	// Returns the recipes with IDs and timestamps populated.
	AddRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error)

	// UpdateRecipes updates existing recipes.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any recipe doesn't exist.
	UpdateRecipes(ctx context.Context, recipes ...*core.Recipe) ([]*core.Recipe, error)

	// DeleteRecipes removes recipes by their IDs.
	// Returns ErrNotFound if any recipe doesn't exist.
	DeleteRecipes(ctx context.Context, ids ...core.ID) error

	// GetRecipe retrieves a single recipe by ID.
	// Returns ErrNotFound if the recipe doesn't exist.
	GetRecipe(ctx context.Context, id core.ID) (*core.Recipe, error)

	// GetRecipes retrieves multiple recipes by their IDs.
	// Returns only the recipes that exist (no error for missing recipes).
	GetRecipes(ctx context.Context, ids ...core.ID) ([]*core.Recipe, error)

	// GetAllRecipes retrieves every recipe in the corpus.
	// Used by the search filter phase, which evaluates hard constraints
	// against the full corpus before any ranking.
	GetAllRecipes(ctx context.Context) ([]*core.Recipe, error)

	// CountRecipes returns the number of recipes in the corpus.
	CountRecipes(ctx context.Context) (int, error)

	// RankBySimilarity ranks candidate recipes by similarity to the given
	// vector, highest first, up to limit results. A nil candidates slice
	// ranks the whole corpus. Recipes without a stored vector are skipped.
	RankBySimilarity(ctx context.Context, vector []float32, candidates []core.ID, limit int) ([]*core.RankedRecipe, error)
}

// IngredientRepository provides operations for the canonical ingredient
// reference data.
type IngredientRepository interface {
	Repository
	// AddIngredients adds one or more canonical ingredients to storage.
	// For ingredients with Id=0, derives content-based IDs from the name.
	// Sets InsertedAt timestamp if not already set.
	// Returns the ingredients with IDs and timestamps populated.
	AddIngredients(ctx context.Context, ingredients ...*core.CanonicalIngredient) ([]*core.CanonicalIngredient, error)

	// UpdateIngredients updates existing ingredients.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any ingredient doesn't exist.
	UpdateIngredients(ctx context.Context, ingredients ...*core.CanonicalIngredient) ([]*core.CanonicalIngredient, error)

	// DeleteIngredients removes ingredients by their IDs.
	// Returns ErrNotFound if any ingredient doesn't exist.
	DeleteIngredients(ctx context.Context, ids ...core.ID) error

	// GetIngredient retrieves a single ingredient by ID.
	// Returns ErrNotFound if the ingredient doesn't exist.
	GetIngredient(ctx context.Context, id core.ID) (*core.CanonicalIngredient, error)

	// GetIngredients retrieves multiple ingredients by their IDs.
	// Returns only the ingredients that exist (no error for missing ones).
	GetIngredients(ctx context.Context, ids ...core.ID) ([]*core.CanonicalIngredient, error)

	// GetAllIngredients retrieves the full canonical ingredient vocabulary.
	GetAllIngredients(ctx context.Context) ([]*core.CanonicalIngredient, error)

	// FindIngredientByVariant finds the canonical ingredient that lists the
	// given surface form among its variants. The lookup is exact on the
	// normalized (lowercased, trimmed) form.
	// Returns ErrNotFound if no ingredient claims the variant.
	FindIngredientByVariant(ctx context.Context, variant string) (*core.CanonicalIngredient, error)

	// FindSimilarIngredient finds the ingredient whose vector is most
	// similar to the given vector. Returns the best match and its
	// similarity, or ErrNotFound if nothing reaches minSimilarity.
	FindSimilarIngredient(ctx context.Context, vector []float32, minSimilarity float32) (*core.CanonicalIngredient, float32, error)
}

// TagRepository provides operations for the tag vocabulary.
type TagRepository interface {
	Repository
	// AddTags adds one or more tags to storage.
	// For tags with Id=0, derives content-based IDs from group and name.
	// Sets InsertedAt timestamp if not already set.
	// Returns the tags with IDs and timestamps populated.
	AddTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error)

	// UpdateTags updates existing tags.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any tag doesn't exist.
	UpdateTags(ctx context.Context, tags ...*core.Tag) ([]*core.Tag, error)

	// DeleteTags removes tags by their IDs.
	// Returns ErrNotFound if any tag doesn't exist.
	DeleteTags(ctx context.Context, ids ...core.ID) error

	// GetTag retrieves a single tag by ID.
	// Returns ErrNotFound if the tag doesn't exist.
	GetTag(ctx context.Context, id core.ID) (*core.Tag, error)

	// GetTags retrieves multiple tags by their IDs.
	// Returns only the tags that exist (no error for missing tags).
	GetTags(ctx context.Context, ids ...core.ID) ([]*core.Tag, error)

	// GetAllTags retrieves the full tag vocabulary.
	GetAllTags(ctx context.Context) ([]*core.Tag, error)

	// FindTagByName finds a tag by its group and normalized name.
	// Returns ErrNotFound if no matching tag exists.
	FindTagByName(ctx context.Context, group core.TagGroup, name string) (*core.Tag, error)

	// FindSimilarTag finds the tag within the given group whose vector is
	// most similar to the given vector. An Unknown group searches all
	// groups. Returns the best match and its similarity, or ErrNotFound if
	// nothing reaches minSimilarity.
	FindSimilarTag(ctx context.Context, group core.TagGroup, vector []float32, minSimilarity float32) (*core.Tag, float32, error)
}

// SessionRepository provides operations for conversation session state.
// A session is stored as a single value under its key; partial states
// are never persisted.
type SessionRepository interface {
	Repository
	// LoadSession retrieves the session state for a key.
	// Returns ErrNotFound if the session doesn't exist.
	LoadSession(ctx context.Context, key string) (*core.SessionState, error)

	// SaveSession stores the complete session state, replacing any
	// previous state under the same key.
	SaveSession(ctx context.Context, state *core.SessionState) error

	// DeleteSession removes a session by key.
	// Deleting a missing session is not an error.
	DeleteSession(ctx context.Context, key string) error

	// ListSessionKeys returns the keys of all stored sessions.
	ListSessionKeys(ctx context.Context) ([]string, error)
}
