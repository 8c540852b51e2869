package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastegraph/recipechat/ai/mock"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage/badger"
)

func seedCorpus(t *testing.T) *badger.Repositories {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	ctx := context.Background()
	_, err = repos.Ingredients.AddIngredients(ctx,
		&core.CanonicalIngredient{Name: "tomato", Variants: []string{"tomatoes"}, Vector: []float32{1}},
		&core.CanonicalIngredient{Name: "garlic", Vector: []float32{1}},
	)
	require.NoError(t, err)
	_, err = repos.Tags.AddTags(ctx,
		&core.Tag{Name: "30-minutes-or-less", Group: core.TagGroupTimeDuration, Vector: []float32{1}},
	)
	require.NoError(t, err)
	_, err = repos.Recipes.AddRecipes(ctx,
		&core.Recipe{Name: "tomato soup", RawIngredients: []string{"4 tomatoes"}, Vector: []float32{1}},
		&core.Recipe{Name: "garlic bread", RawIngredients: []string{"1 baguette", "4 garlic cloves"}, Vector: []float32{1}},
	)
	require.NoError(t, err)

	return repos
}

func TestReembedder_ReplacesAllVectors(t *testing.T) {
	repos := seedCorpus(t)
	ctx := context.Background()

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{0.5, 0.5}
		}
		return vectors, nil
	}

	var progress bytes.Buffer
	reembedder := NewReembedder(repos.Recipes, repos.Ingredients, repos.Tags,
		embedder, &Config{BatchSize: 1, ReportInterval: 1, MaxRetries: 1, RetryDelay: time.Millisecond},
		&progress)

	require.NoError(t, reembedder.Run(ctx))

	ingredients, err := repos.Ingredients.GetAllIngredients(ctx)
	require.NoError(t, err)
	for _, ing := range ingredients {
		assert.Equal(t, []float32{0.5, 0.5}, ing.Vector, ing.Name)
	}

	tags, err := repos.Tags.GetAllTags(ctx)
	require.NoError(t, err)
	for _, tag := range tags {
		assert.Equal(t, []float32{0.5, 0.5}, tag.Vector, tag.Name)
	}

	recipes, err := repos.Recipes.GetAllRecipes(ctx)
	require.NoError(t, err)
	for _, recipe := range recipes {
		assert.Equal(t, []float32{0.5, 0.5}, recipe.Vector, recipe.Name)
	}

	assert.Contains(t, progress.String(), "ingredients")
	assert.Contains(t, progress.String(), "recipes")
}

func TestReembedder_RetriesTransientFailures(t *testing.T) {
	repos := seedCorpus(t)
	ctx := context.Background()

	calls := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("temporary outage")
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0}
		}
		return vectors, nil
	}

	var progress bytes.Buffer
	reembedder := NewReembedder(repos.Recipes, repos.Ingredients, repos.Tags,
		embedder, &Config{BatchSize: 100, ReportInterval: 100, MaxRetries: 3, RetryDelay: time.Millisecond},
		&progress)

	require.NoError(t, reembedder.Run(ctx))
	assert.GreaterOrEqual(t, calls, 2)
}

func TestReembedder_FailsAfterExhaustedRetries(t *testing.T) {
	repos := seedCorpus(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service down")
	}

	var progress bytes.Buffer
	reembedder := NewReembedder(repos.Recipes, repos.Ingredients, repos.Tags,
		embedder, &Config{BatchSize: 100, ReportInterval: 100, MaxRetries: 2, RetryDelay: time.Millisecond},
		&progress)

	err := reembedder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestReembedder_CountMismatch(t *testing.T) {
	repos := seedCorpus(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}

	var progress bytes.Buffer
	reembedder := NewReembedder(repos.Recipes, repos.Ingredients, repos.Tags,
		embedder, &Config{BatchSize: 100, ReportInterval: 100, MaxRetries: 1, RetryDelay: time.Millisecond},
		&progress)

	err := reembedder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestReembedder_EmptyCorpus(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	var progress bytes.Buffer
	reembedder := NewReembedder(repos.Recipes, repos.Ingredients, repos.Tags,
		mock.NewMockEmbedder(), nil, &progress)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, progress.String(), "No ingredients found")
}
