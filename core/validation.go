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


package core

import (
	"fmt"
	"slices"
)

// ValidateRecipeQuery validates a RecipeQuery according to domain rules.
//
// Validation rules:
//   - ResultCount must be 0 (unstated) or within [MinResultCount, MaxResultCount]
//   - No identity may appear in both IncludeIngredients and ExcludeIngredients
//   - No identity may appear in both RequiredTags and ExcludedTags
//
// NOT validated:
//   - FreeText (may be empty; ranking degrades gracefully)
//   - TagAlternatives overlap with ExcludedTags (alternatives are soft)
func ValidateRecipeQuery(q *RecipeQuery) error {
	if q == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	if q.ResultCount != 0 && (q.ResultCount < MinResultCount || q.ResultCount > MaxResultCount) {
		return fmt.Errorf("%w: %w: %d", ErrInvalidQuery, ErrResultCountOutOfRange, q.ResultCount)
	}

	for _, id := range q.IncludeIngredients {
		if slices.Contains(q.ExcludeIngredients, id) {
			return fmt.Errorf("%w: %w: ingredient %d", ErrInvalidQuery, ErrConflictingDirectives, id)
		}
	}
	for _, id := range q.RequiredTags {
		if slices.Contains(q.ExcludedTags, id) {
			return fmt.Errorf("%w: %w: tag %d", ErrInvalidQuery, ErrConflictingDirectives, id)
		}
	}

	return nil
}

// ValidateRecipe validates a Recipe according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Servings must not be negative
//
// NOT validated (populated at seed time):
//   - Vector (can be empty until the ingest pipeline runs)
//   - Nutrition (can be zero until enrichment runs)
func ValidateRecipe(recipe *Recipe) error {
	if recipe == nil {
		return fmt.Errorf("%w: recipe is nil", ErrInvalidRecipe)
	}
	if recipe.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, ErrEmptyName)
	}
	if recipe.Servings < 0 {
		return fmt.Errorf("%w: servings %d", ErrInvalidRecipe, recipe.Servings)
	}
	return nil
}

// ValidateIngredient validates a CanonicalIngredient.
//
// Validation rules:
//   - Name must not be empty
//   - Variant strings must be unique within the ingredient
func ValidateIngredient(ing *CanonicalIngredient) error {
	if ing == nil {
		return fmt.Errorf("%w: ingredient is nil", ErrInvalidIngredient)
	}
	if ing.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIngredient, ErrEmptyName)
	}
	seen := make(map[string]bool, len(ing.Variants))
	for _, v := range ing.Variants {
		if seen[v] {
			return fmt.Errorf("%w: duplicate variant %q", ErrInvalidIngredient, v)
		}
		seen[v] = true
	}
	return nil
}

// ValidateTag validates a Tag.
//
// Validation rules:
//   - Name must not be empty
//   - Group must be a known taxonomy group
func ValidateTag(tag *Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: tag is nil", ErrInvalidTag)
	}
	if tag.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrEmptyName)
	}
	if _, ok := tagGroupNames[tag.Group]; !ok {
		return fmt.Errorf("%w: %w: %d", ErrInvalidTag, ErrUnknownTagGroup, tag.Group)
	}
	return nil
}

// ValidateSessionState validates a SessionState.
//
// Validation rules:
//   - Key must not be empty
//   - Turn sequence numbers must be 1..N in order
//   - The current query must itself be valid
func ValidateSessionState(s *SessionState) error {
	if s == nil {
		return fmt.Errorf("%w: session is nil", ErrInvalidSession)
	}
	if s.Key == "" {
		return fmt.Errorf("%w: empty session key", ErrInvalidSession)
	}
	for i, turn := range s.Turns {
		if turn.Seq != i+1 {
			return fmt.Errorf("%w: turn %d has sequence %d", ErrInvalidSession, i, turn.Seq)
		}
	}
	if err := ValidateRecipeQuery(&s.Current); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	return nil
}
