// Copyright 2025 Tastegraph
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

// Snapshot is an immutable view of the canonical ingredient and tag
// vocabularies. Resolution runs entirely against a snapshot, so concurrent
// searches never block on reference-data updates.
type Snapshot struct {
	ingredientsByVariant map[string]*core.CanonicalIngredient
	ingredientsByID      map[core.ID]*core.CanonicalIngredient
	tagsByName           map[string]*core.Tag
	tagsByID             map[core.ID]*core.Tag
	ingredients          []*core.CanonicalIngredient
	tags                 []*core.Tag
	loadedAt             time.Time
}

// IngredientByVariant returns the ingredient claiming the normalized term,
// or nil if no exact variant match exists.
func (s *Snapshot) IngredientByVariant(term string) *core.CanonicalIngredient {
	return s.ingredientsByVariant[normalizeTerm(term)]
}

// IngredientByID returns the ingredient with the given ID, or nil.
func (s *Snapshot) IngredientByID(id core.ID) *core.CanonicalIngredient {
	return s.ingredientsByID[id]
}

// TagByName returns the tag with the given group and normalized name, or nil.
func (s *Snapshot) TagByName(group core.TagGroup, name string) *core.Tag {
	return s.tagsByName[tagNameKey(group, name)]
}

// TagByID returns the tag with the given ID, or nil.
func (s *Snapshot) TagByID(id core.ID) *core.Tag {
	return s.tagsByID[id]
}

// LoadedAt reports when this snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// MostSimilarIngredient returns the ingredient whose vector is most similar
// to the given vector, with its similarity. Returns nil if no ingredient
// reaches minSimilarity.
func (s *Snapshot) MostSimilarIngredient(vector []float32, minSimilarity float32) (*core.CanonicalIngredient, float32) {
	var best *core.CanonicalIngredient
	var bestScore float32
	for _, ing := range s.ingredients {
		if len(ing.Vector) == 0 {
			continue
		}
		score := dotProduct(vector, ing.Vector)
		if score >= minSimilarity && (best == nil || score > bestScore) {
			best = ing
			bestScore = score
		}
	}
	return best, bestScore
}

// MostSimilarTag returns the most similar tag within the given group.
// An Unknown group searches all groups. Returns nil if no tag reaches
// minSimilarity.
func (s *Snapshot) MostSimilarTag(group core.TagGroup, vector []float32, minSimilarity float32) (*core.Tag, float32) {
	var best *core.Tag
	var bestScore float32
	for _, tag := range s.tags {
		if len(tag.Vector) == 0 {
			continue
		}
		if group != core.TagGroupUnknown && tag.Group != group {
			continue
		}
		score := dotProduct(vector, tag.Vector)
		if score >= minSimilarity && (best == nil || score > bestScore) {
			best = tag
			bestScore = score
		}
	}
	return best, bestScore
}

// Cache holds the current reference snapshot and reloads it from storage.
// Reload builds a complete new snapshot and swaps it in atomically, so
// readers always see either the old or the new vocabulary, never a mix.
type Cache struct {
	ingredients storage.IngredientRepository
	tags        storage.TagRepository
	snap        atomic.Pointer[Snapshot]
	logger      *slog.Logger
}

// NewCache creates a reference cache over the given repositories.
// Call Reload before first use.
func NewCache(ingredients storage.IngredientRepository, tags storage.TagRepository) *Cache {
	return &Cache{
		ingredients: ingredients,
		tags:        tags,
		logger:      slog.Default().With("component", "reference-cache"),
	}
}

// Reload loads the full vocabularies and swaps the new snapshot in.
// On failure the previous snapshot, if any, stays active.
func (c *Cache) Reload(ctx context.Context) error {
	ingredients, err := c.ingredients.GetAllIngredients(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReferenceUnavailable, err)
	}
	tags, err := c.tags.GetAllTags(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReferenceUnavailable, err)
	}

	snap := &Snapshot{
		ingredientsByVariant: make(map[string]*core.CanonicalIngredient),
		ingredientsByID:      make(map[core.ID]*core.CanonicalIngredient, len(ingredients)),
		tagsByName:           make(map[string]*core.Tag, len(tags)),
		tagsByID:             make(map[core.ID]*core.Tag, len(tags)),
		ingredients:          ingredients,
		tags:                 tags,
		loadedAt:             time.Now().UTC(),
	}

	for _, ing := range ingredients {
		snap.ingredientsByID[ing.Id] = ing
		snap.ingredientsByVariant[normalizeTerm(ing.Name)] = ing
		for _, variant := range ing.Variants {
			snap.ingredientsByVariant[normalizeTerm(variant)] = ing
		}
	}
	for _, tag := range tags {
		snap.tagsByID[tag.Id] = tag
		snap.tagsByName[tagNameKey(tag.Group, tag.Name)] = tag
	}

	c.snap.Store(snap)
	c.logger.Info("reference snapshot loaded",
		"ingredients", len(ingredients),
		"tags", len(tags))
	return nil
}

// Snapshot returns the current snapshot.
// Returns ErrCacheEmpty if Reload has never succeeded.
func (c *Cache) Snapshot() (*Snapshot, error) {
	snap := c.snap.Load()
	if snap == nil {
		return nil, ErrCacheEmpty
	}
	return snap, nil
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func tagNameKey(group core.TagGroup, name string) string {
	return group.String() + ":" + normalizeTerm(name)
}

// dotProduct calculates the dot product of two vectors.
// For unit vectors this equals cosine similarity.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
