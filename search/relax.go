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

import "github.com/tastegraph/recipechat/core"

// RelaxationStep identifies one rung of the relaxation ladder. Steps are
// reported to the caller so the conversation layer can tell the user what
// was loosened.
type RelaxationStep string

const (
	// RelaxAlternativeTags drops all alternative tag-sets.
	RelaxAlternativeTags RelaxationStep = "alternative-tags"
	// RelaxRequiredTags drops required tags outside the dietary group.
	RelaxRequiredTags RelaxationStep = "required-tags"
	// RelaxExcludedTags drops excluded tags outside the dietary group.
	RelaxExcludedTags RelaxationStep = "excluded-tags"
	// RelaxIngredientGroups drops ingredient-group requirements.
	RelaxIngredientGroups RelaxationStep = "ingredient-groups"
)

// Describe returns a user-facing explanation of the step.
func (s RelaxationStep) Describe() string {
	switch s {
	case RelaxAlternativeTags:
		return "dropped alternative tag requirements"
	case RelaxRequiredTags:
		return "dropped non-dietary required tags"
	case RelaxExcludedTags:
		return "dropped non-dietary tag exclusions"
	case RelaxIngredientGroups:
		return "dropped ingredient-category requirements"
	default:
		return string(s)
	}
}

// tagLookup resolves a tag identity to its stored tag, or nil when unknown.
type tagLookup interface {
	TagByID(id core.ID) *core.Tag
}

// relaxation is one rung: a pure transformation of the query. apply reports
// whether it changed anything; unchanged rungs are skipped without a
// re-filter.
type relaxation struct {
	step  RelaxationStep
	apply func(q core.RecipeQuery, tags tagLookup) (core.RecipeQuery, bool)
}

// ladder is the fixed relaxation order, least critical constraint first.
// Dietary tags, explicit ingredient includes and all ingredient excludes are
// never relaxed.
var ladder = []relaxation{
	{RelaxAlternativeTags, dropAlternativeTags},
	{RelaxRequiredTags, dropNonDietaryRequired},
	{RelaxExcludedTags, dropNonDietaryExcluded},
	{RelaxIngredientGroups, dropIngredientGroups},
}

func dropAlternativeTags(q core.RecipeQuery, _ tagLookup) (core.RecipeQuery, bool) {
	if len(q.TagAlternatives) == 0 {
		return q, false
	}
	out := q.Clone()
	out.TagAlternatives = nil
	return out, true
}

func dropNonDietaryRequired(q core.RecipeQuery, tags tagLookup) (core.RecipeQuery, bool) {
	kept, changed := keepDietary(q.RequiredTags, tags)
	if !changed {
		return q, false
	}
	out := q.Clone()
	out.RequiredTags = kept
	return out, true
}

func dropNonDietaryExcluded(q core.RecipeQuery, tags tagLookup) (core.RecipeQuery, bool) {
	kept, changed := keepDietary(q.ExcludedTags, tags)
	if !changed {
		return q, false
	}
	out := q.Clone()
	out.ExcludedTags = kept
	return out, true
}

func dropIngredientGroups(q core.RecipeQuery, _ tagLookup) (core.RecipeQuery, bool) {
	if len(q.IncludeGroups) == 0 {
		return q, false
	}
	out := q.Clone()
	out.IncludeGroups = nil
	return out, true
}

// keepDietary filters a tag list down to its dietary members. Identities
// missing from the vocabulary are treated as non-dietary and dropped.
func keepDietary(ids []core.ID, tags tagLookup) ([]core.ID, bool) {
	kept := make([]core.ID, 0, len(ids))
	for _, id := range ids {
		if tag := tags.TagByID(id); tag != nil && tag.Group.Critical() {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return ids, false
	}
	if len(kept) == 0 {
		kept = nil
	}
	return kept, true
}
