// Copyright 2025 Tastegraph
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

// NutritionLookup resolves per-serving nutrition for a recipe's ingredient
// lines. The nutrition package's client satisfies this.
type NutritionLookup interface {
	Analyze(ctx context.Context, title string, ingredientLines []string, servings int) (*core.Nutrition, error)
}

// Pipeline seeds recipes, ingredients and tags into storage, embedding
// their semantic text in parallel batches. Seeding is synchronous: a call
// returns once every batch is stored or one of them failed.
type Pipeline struct {
	recipes     storage.RecipeRepository
	ingredients storage.IngredientRepository
	tags        storage.TagRepository
	embedder    ai.Embedder
	nutrition   NutritionLookup
	pool        *ants.Pool
	batchSize   int
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records one worker embeds per call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size > 0 {
			p.batchSize = size
		}
		return nil
	}
}

// WithNutrition enables nutrition enrichment for recipes that carry raw
// ingredient lines but no nutrition facts yet.
func WithNutrition(lookup NutritionLookup) Option {
	return func(p *Pipeline) error {
		p.nutrition = lookup
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a seeding pipeline.
func NewPipeline(
	recipes storage.RecipeRepository,
	ingredients storage.IngredientRepository,
	tags storage.TagRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if recipes == nil {
		return nil, ErrRecipeRepositoryRequired
	}
	if ingredients == nil {
		return nil, ErrIngredientRepositoryRequired
	}
	if tags == nil {
		return nil, ErrTagRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		recipes:     recipes,
		ingredients: ingredients,
		tags:        tags,
		embedder:    provider.Embedder(),
		pool:        pool,
		batchSize:   32,
		logger:      slog.Default().With("component", "ingest-pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// SeedIngredients embeds and stores the canonical ingredient vocabulary.
// An ingredient's embedding text is its name plus its variants, so fuzzy
// resolution of any surface form lands near it.
func (p *Pipeline) SeedIngredients(ctx context.Context, ingredients []*core.CanonicalIngredient) error {
	p.logger.Info("seeding ingredients", "count", len(ingredients))
	return p.runBatches(len(ingredients), func(start, end int) error {
		batch := ingredients[start:end]
		texts := make([]string, len(batch))
		for i, ing := range batch {
			texts[i] = IngredientText(ing)
		}
		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		for i := range batch {
			batch[i].Vector = vectors[i]
		}
		_, err = p.ingredients.AddIngredients(ctx, batch...)
		return err
	})
}

// SeedTags embeds and stores the tag vocabulary. The embedding text is the
// de-hyphenated tag name, matching how users phrase tags.
func (p *Pipeline) SeedTags(ctx context.Context, tags []*core.Tag) error {
	p.logger.Info("seeding tags", "count", len(tags))
	return p.runBatches(len(tags), func(start, end int) error {
		batch := tags[start:end]
		texts := make([]string, len(batch))
		for i, tag := range batch {
			texts[i] = TagText(tag)
		}
		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		for i := range batch {
			batch[i].Vector = vectors[i]
		}
		_, err = p.tags.AddTags(ctx, batch...)
		return err
	})
}

// SeedRecipes embeds and stores the recipe corpus. When a nutrition lookup
// is configured, recipes with raw ingredient lines and no nutrition facts
// are enriched first; a failed lookup is logged and skipped, never fatal.
func (p *Pipeline) SeedRecipes(ctx context.Context, recipes []*core.Recipe) error {
	p.logger.Info("seeding recipes", "count", len(recipes))
	return p.runBatches(len(recipes), func(start, end int) error {
		batch := recipes[start:end]

		if p.nutrition != nil {
			for _, recipe := range batch {
				if recipe.Nutrition != (core.Nutrition{}) || len(recipe.RawIngredients) == 0 {
					continue
				}
				facts, err := p.nutrition.Analyze(ctx, recipe.Name, recipe.RawIngredients, recipe.Servings)
				if err != nil {
					p.logger.Warn("nutrition lookup failed, seeding without facts",
						"recipe", recipe.Name, "err", err)
					continue
				}
				recipe.Nutrition = *facts
			}
		}

		texts := make([]string, len(batch))
		for i, recipe := range batch {
			texts[i] = RecipeText(recipe)
		}
		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		for i := range batch {
			batch[i].Vector = vectors[i]
		}
		_, err = p.recipes.AddRecipes(ctx, batch...)
		return err
	})
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// runBatches splits n items into batchSize slices, runs fn for each on the
// worker pool, and joins every batch error.
func (p *Pipeline) runBatches(n int, fn func(start, end int) error) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for start := 0; start < n; start += p.batchSize {
		end := start + p.batchSize
		if end > n {
			end = n
		}
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := fn(start, end); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}
