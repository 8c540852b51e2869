package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastegraph/recipechat/ai/mock"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage/badger"
)

func newPipeline(t *testing.T, opts ...Option) (*Pipeline, *badger.Repositories) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	p, err := NewPipeline(repos.Recipes, repos.Ingredients, repos.Tags,
		mock.NewMockProvider(), opts...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p, repos
}

func TestNewPipeline_Validation(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	provider := mock.NewMockProvider()

	_, err = NewPipeline(nil, repos.Ingredients, repos.Tags, provider)
	assert.Equal(t, ErrRecipeRepositoryRequired, err)

	_, err = NewPipeline(repos.Recipes, nil, repos.Tags, provider)
	assert.Equal(t, ErrIngredientRepositoryRequired, err)

	_, err = NewPipeline(repos.Recipes, repos.Ingredients, nil, provider)
	assert.Equal(t, ErrTagRepositoryRequired, err)

	_, err = NewPipeline(repos.Recipes, repos.Ingredients, repos.Tags, nil)
	assert.Equal(t, ErrAIProviderRequired, err)
}

func TestSeedIngredients(t *testing.T) {
	p, repos := newPipeline(t, WithBatchSize(2), WithPoolSize(2))
	ctx := context.Background()

	err := p.SeedIngredients(ctx, []*core.CanonicalIngredient{
		{Name: "tomato", Variants: []string{"tomatoes"}},
		{Name: "basil"},
		{Name: "garlic"},
		{Name: "onion"},
		{Name: "nuts"},
	})
	require.NoError(t, err)

	stored, err := repos.Ingredients.GetAllIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 5)
	for _, ing := range stored {
		assert.NotEmpty(t, ing.Vector, "ingredient %q has no embedding", ing.Name)
	}

	// Variant index works for seeded data
	found, err := repos.Ingredients.FindIngredientByVariant(ctx, "tomatoes")
	require.NoError(t, err)
	assert.Equal(t, "tomato", found.Name)
}

func TestSeedTags(t *testing.T) {
	p, repos := newPipeline(t)
	ctx := context.Background()

	err := p.SeedTags(ctx, []*core.Tag{
		{Name: "vegetarian", Group: core.TagGroupDietaryHealth},
		{Name: "30-minutes-or-less", Group: core.TagGroupTimeDuration},
	})
	require.NoError(t, err)

	stored, err := repos.Tags.GetAllTags(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, tag := range stored {
		assert.NotEmpty(t, tag.Vector)
	}
}

// stubNutrition counts lookups and returns fixed facts.
type stubNutrition struct {
	calls int
	err   error
}

func (s *stubNutrition) Analyze(_ context.Context, _ string, _ []string, _ int) (*core.Nutrition, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &core.Nutrition{CaloriesKcal: 250, ProteinG: 12}, nil
}

func TestSeedRecipes_WithNutrition(t *testing.T) {
	lookup := &stubNutrition{}
	p, repos := newPipeline(t, WithNutrition(lookup))
	ctx := context.Background()

	recipes := []*core.Recipe{
		{
			Name:           "tomato soup",
			RawIngredients: []string{"4 tomatoes", "1 onion"},
			Servings:       2,
		},
		{
			// Already has facts; must not trigger a lookup.
			Name:           "granola",
			RawIngredients: []string{"oats", "nuts"},
			Nutrition:      core.Nutrition{CaloriesKcal: 500},
		},
		{
			// No raw lines; nothing to analyze.
			Name: "mystery dish",
		},
	}
	require.NoError(t, p.SeedRecipes(ctx, recipes))
	assert.Equal(t, 1, lookup.calls)

	stored, err := repos.Recipes.GetRecipe(ctx, core.RecipeIDFromName("tomato soup"))
	require.NoError(t, err)
	assert.InDelta(t, 250, stored.Nutrition.CaloriesKcal, 0.001)
	assert.NotEmpty(t, stored.Vector)
}

func TestSeedRecipes_NutritionFailureIsNotFatal(t *testing.T) {
	lookup := &stubNutrition{err: errors.New("quota exceeded")}
	p, repos := newPipeline(t, WithNutrition(lookup))
	ctx := context.Background()

	err := p.SeedRecipes(ctx, []*core.Recipe{
		{Name: "tomato soup", RawIngredients: []string{"4 tomatoes"}},
	})
	require.NoError(t, err)

	stored, err := repos.Recipes.GetRecipe(ctx, core.RecipeIDFromName("tomato soup"))
	require.NoError(t, err)
	assert.Zero(t, stored.Nutrition.CaloriesKcal)
}

func TestSeedRecipes_EmbeddingFailureFails(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockQueryExtractor())

	p, err := NewPipeline(repos.Recipes, repos.Ingredients, repos.Tags, provider)
	require.NoError(t, err)
	defer p.Release()

	err = p.SeedRecipes(context.Background(), []*core.Recipe{{Name: "tomato soup"}})
	assert.ErrorContains(t, err, "embedding service down")

	count, err := repos.Recipes.CountRecipes(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
