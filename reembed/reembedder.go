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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/ingest"
	"github.com/tastegraph/recipechat/storage"
)

// Config holds configuration for a reembedding run.
type Config struct {
	// BatchSize is the number of entities embedded per API call.
	BatchSize int

	// ReportInterval is how often progress is reported, in entities.
	ReportInterval int

	// MaxRetries is the maximum number of attempts per embedding call.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the stored vectors of the whole corpus: recipes,
// canonical ingredients and tags. Entities are updated in place, batch by
// batch, so an interrupted run leaves a mixed but valid corpus that can be
// rerun to completion.
type Reembedder struct {
	recipes     storage.RecipeRepository
	ingredients storage.IngredientRepository
	tags        storage.TagRepository
	embedder    ai.Embedder
	config      *Config
	progress    io.Writer
}

// NewReembedder creates a reembedder over the given repositories.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(
	recipes storage.RecipeRepository,
	ingredients storage.IngredientRepository,
	tags storage.TagRepository,
	embedder ai.Embedder,
	config *Config,
	progress io.Writer,
) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Reembedder{
		recipes:     recipes,
		ingredients: ingredients,
		tags:        tags,
		embedder:    embedder,
		config:      config,
		progress:    progress,
	}
}

// Run reembeds ingredients, tags and recipes, in that order. The reference
// vocabularies go first so a partially completed run still leaves the
// resolver working against the new model.
func (r *Reembedder) Run(ctx context.Context) error {
	if err := r.runIngredients(ctx); err != nil {
		return err
	}
	if err := r.runTags(ctx); err != nil {
		return err
	}
	return r.runRecipes(ctx)
}

func (r *Reembedder) runIngredients(ctx context.Context) error {
	all, err := r.ingredients.GetAllIngredients(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	return runEntities(ctx, r, "ingredients", all,
		func(ing *core.CanonicalIngredient) string { return ingest.IngredientText(ing) },
		func(ing *core.CanonicalIngredient, vector []float32) { ing.Vector = vector },
		func(ctx context.Context, batch []*core.CanonicalIngredient) error {
			_, err := r.ingredients.UpdateIngredients(ctx, batch...)
			return err
		})
}

func (r *Reembedder) runTags(ctx context.Context) error {
	all, err := r.tags.GetAllTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	return runEntities(ctx, r, "tags", all,
		func(tag *core.Tag) string { return ingest.TagText(tag) },
		func(tag *core.Tag, vector []float32) { tag.Vector = vector },
		func(ctx context.Context, batch []*core.Tag) error {
			_, err := r.tags.UpdateTags(ctx, batch...)
			return err
		})
}

func (r *Reembedder) runRecipes(ctx context.Context) error {
	all, err := r.recipes.GetAllRecipes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}
	return runEntities(ctx, r, "recipes", all,
		func(recipe *core.Recipe) string { return ingest.RecipeText(recipe) },
		func(recipe *core.Recipe, vector []float32) { recipe.Vector = vector },
		func(ctx context.Context, batch []*core.Recipe) error {
			_, err := r.recipes.UpdateRecipes(ctx, batch...)
			return err
		})
}

// runEntities embeds and updates one entity kind in batches with retry and
// progress reporting.
func runEntities[T any](
	ctx context.Context,
	r *Reembedder,
	label string,
	entities []*T,
	text func(*T) string,
	setVector func(*T, []float32),
	update func(context.Context, []*T) error,
) error {
	total := len(entities)
	if total == 0 {
		fmt.Fprintf(r.progress, "No %s found (0 entries)\n", label)
		return nil
	}

	fmt.Fprintf(r.progress, "Reembedding %d %s (batch size: %d)\n",
		total, label, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, label, total, r.config.ReportInterval)
	tracker.Start()

	for start := 0; start < total; start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > total {
			end = total
		}
		batch := entities[start:end]

		texts := make([]string, len(batch))
		for i, entity := range batch {
			texts[i] = text(entity)
		}

		var vectors [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			vectors, embedErr = r.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, r.config.MaxRetries, r.config.RetryDelay)
		if err != nil {
			return fmt.Errorf("failed to embed %s after %d attempts: %w",
				label, r.config.MaxRetries, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedding count mismatch for %s: expected %d, got %d",
				label, len(batch), len(vectors))
		}

		for i, entity := range batch {
			setVector(entity, vectors[i])
		}
		if err := update(ctx, batch); err != nil {
			return fmt.Errorf("failed to update %s: %w", label, err)
		}

		tracker.Update(end)
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Done: %d %s in %v (%.1f/sec)\n",
		total, label, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())
	return nil
}
