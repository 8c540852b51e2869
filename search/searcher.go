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

package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/resolve"
	"github.com/tastegraph/recipechat/storage"
)

// Result is the outcome of one search: the ranked recipes, the relaxation
// steps that were needed to produce them, and whether the ladder ran out
// with nothing to show. An exhausted result is a normal outcome, not an
// error.
type Result struct {
	Recipes     []*core.RankedRecipe
	Relaxations []RelaxationStep
	Exhausted   bool
}

// Searcher runs the two-phase, ingredients-first search: a hard filter over
// canonical identities, then embedding-similarity ranking of the survivors.
// The phases never blend — similarity cannot resurrect a recipe the filter
// rejected.
type Searcher struct {
	recipes  storage.RecipeRepository
	cache    *resolve.Cache
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the recipe corpus and the
// reference cache.
func NewSearcher(
	recipes storage.RecipeRepository,
	cache *resolve.Cache,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if recipes == nil {
		return nil, ErrRecipeRepositoryRequired
	}
	if cache == nil {
		return nil, ErrReferenceCacheRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		recipes:  recipes,
		cache:    cache,
		embedder: provider.Embedder(),
		logger:   slog.Default().With("component", "searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the filter and ranking phases for the query.
func (s *Searcher) Search(ctx context.Context, query core.RecipeQuery) (*Result, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs the search with stage callbacks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query core.RecipeQuery, monitor SearchMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	snap, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusUnavailable, err)
	}

	corpus, err := s.recipes.GetAllRecipes(ctx)
	if err != nil {
		s.logger.Error("failed to read recipe corpus", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrCorpusUnavailable, err)
	}

	// Phase 1: hard filter over canonical identities.
	candidates := filterRecipes(corpus, query)
	monitor.AfterFilterPhase(candidates)

	result := &Result{}

	// Zero candidates triggers the relaxation ladder; each applied rung
	// re-runs the filter and the first non-empty set wins.
	relaxed := query
	for i := 0; len(candidates) == 0 && i < len(ladder); i++ {
		next, changed := ladder[i].apply(relaxed, snap)
		if !changed {
			continue
		}
		relaxed = next
		result.Relaxations = append(result.Relaxations, ladder[i].step)
		candidates = filterRecipes(corpus, relaxed)
		monitor.RelaxationApplied(ladder[i].step, candidates)
		s.logger.Debug("relaxation applied",
			"step", string(ladder[i].step),
			"candidates", len(candidates))
	}

	if len(candidates) == 0 {
		result.Exhausted = true
		monitor.Exhausted()
		s.logger.Info("no results after full relaxation")
		return result, nil
	}

	// Phase 2: rank survivors by semantic similarity.
	vector, err := s.embedder.EmbedText(ctx, semanticText(relaxed, snap))
	if err != nil {
		s.logger.Error("failed to embed query text", "err", err)
		return nil, err
	}

	ranked, err := s.recipes.RankBySimilarity(ctx, vector, candidates, relaxed.EffectiveResultCount())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusUnavailable, err)
	}
	result.Recipes = ranked
	monitor.Finish(ranked)
	return result, nil
}

// filterRecipes returns the IDs of recipes satisfying every hard constraint.
// Membership checks run against canonical identities only.
func filterRecipes(corpus []*core.Recipe, q core.RecipeQuery) []core.ID {
	var candidates []core.ID
	for _, recipe := range corpus {
		if matchesQuery(recipe, q) {
			candidates = append(candidates, recipe.Id)
		}
	}
	return candidates
}

func matchesQuery(r *core.Recipe, q core.RecipeQuery) bool {
	for _, id := range q.IncludeIngredients {
		if !r.HasIngredient(id) {
			return false
		}
	}
	for _, group := range q.IncludeGroups {
		if !hasAnyIngredient(r, group.Members) {
			return false
		}
	}
	for _, id := range q.ExcludeIngredients {
		if r.HasIngredient(id) {
			return false
		}
	}
	for _, id := range q.RequiredTags {
		if !r.HasTag(id) {
			return false
		}
	}
	for _, alt := range q.TagAlternatives {
		if !hasAnyTag(r, alt) {
			return false
		}
	}
	for _, id := range q.ExcludedTags {
		if r.HasTag(id) {
			return false
		}
	}
	return true
}

func hasAnyIngredient(r *core.Recipe, ids []core.ID) bool {
	for _, id := range ids {
		if r.HasIngredient(id) {
			return true
		}
	}
	return false
}

func hasAnyTag(r *core.Recipe, ids []core.ID) bool {
	for _, id := range ids {
		if r.HasTag(id) {
			return true
		}
	}
	return false
}

// semanticText builds the query's semantic representation for the ranking
// phase: the free text plus the resolved names of every positively stated
// ingredient and tag. Exclusions contribute nothing; the filter already
// enforced them and their names would only pollute the embedding.
func semanticText(q core.RecipeQuery, snap *resolve.Snapshot) string {
	parts := make([]string, 0, 8)
	if q.FreeText != "" {
		parts = append(parts, q.FreeText)
	}
	for _, id := range q.IncludeIngredients {
		if ing := snap.IngredientByID(id); ing != nil {
			parts = append(parts, ing.Name)
		}
	}
	for _, group := range q.IncludeGroups {
		if group.Name != "" {
			parts = append(parts, group.Name)
		}
	}
	appendTagName := func(id core.ID) {
		if tag := snap.TagByID(id); tag != nil {
			parts = append(parts, strings.ReplaceAll(tag.Name, "-", " "))
		}
	}
	for _, id := range q.RequiredTags {
		appendTagName(id)
	}
	for _, alt := range q.TagAlternatives {
		for _, id := range alt {
			appendTagName(id)
		}
	}
	return strings.Join(parts, ", ")
}
