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

package conversation

import (
	"slices"

	"github.com/tastegraph/recipechat/core"
)

// Merge combines a newly extracted partial query with the previous turn's
// accumulated query. The rule for every ingredient and tag identity is
// union-then-override-by-recency: both directions are unioned first, then
// the directive stated in the new turn wins for any identity it names.
// A conflict is recorded whenever an override removes a directive that was
// previously present; conflicts are telemetry, never an error.
//
// Merging a query that contains only already-present directives returns a
// query identical to prev and records no conflicts.
func Merge(prev, next core.RecipeQuery, turnSeq int) (core.RecipeQuery, []core.Conflict) {
	merged := prev.Clone()
	var conflicts []core.Conflict

	merged.IncludeIngredients = unionIDs(merged.IncludeIngredients, next.IncludeIngredients)
	merged.ExcludeIngredients = unionIDs(merged.ExcludeIngredients, next.ExcludeIngredients)
	merged.RequiredTags = unionIDs(merged.RequiredTags, next.RequiredTags)
	merged.ExcludedTags = unionIDs(merged.ExcludedTags, next.ExcludedTags)

	// Override by recency: a directive stated this turn removes the
	// opposite directive for the same identity. Only removals of
	// directives present before this turn count as conflicts.
	merged.IncludeIngredients, conflicts = override(
		merged.IncludeIngredients, next.ExcludeIngredients, prev.IncludeIngredients,
		core.DirectiveInclude, core.DirectiveExclude, turnSeq, conflicts)
	merged.ExcludeIngredients, conflicts = override(
		merged.ExcludeIngredients, next.IncludeIngredients, prev.ExcludeIngredients,
		core.DirectiveExclude, core.DirectiveInclude, turnSeq, conflicts)
	merged.RequiredTags, conflicts = override(
		merged.RequiredTags, next.ExcludedTags, prev.RequiredTags,
		core.DirectiveInclude, core.DirectiveExclude, turnSeq, conflicts)
	merged.ExcludedTags, conflicts = override(
		merged.ExcludedTags, next.RequiredTags, prev.ExcludedTags,
		core.DirectiveExclude, core.DirectiveInclude, turnSeq, conflicts)

	merged.TagAlternatives = mergeAlternatives(merged.TagAlternatives, next.TagAlternatives)
	merged.IncludeGroups = mergeGroups(merged.IncludeGroups, next.IncludeGroups)

	if next.FreeText != "" {
		merged.FreeText = next.FreeText
	}
	if next.ResultCount != 0 {
		merged.ResultCount = next.ResultCount
	}

	return merged, conflicts
}

// unionIDs appends the members of add that are not already in base,
// preserving statement order.
func unionIDs(base, add []core.ID) []core.ID {
	for _, id := range add {
		if !slices.Contains(base, id) {
			base = append(base, id)
		}
	}
	return base
}

// override removes from kept every identity named in opposite, recording a
// conflict for each removal whose directive predates this turn.
func override(kept, opposite, previous []core.ID, was, now core.Directive, turnSeq int, conflicts []core.Conflict) ([]core.ID, []core.Conflict) {
	if len(opposite) == 0 {
		return kept, conflicts
	}
	out := kept[:0]
	for _, id := range kept {
		if !slices.Contains(opposite, id) {
			out = append(out, id)
			continue
		}
		if slices.Contains(previous, id) {
			conflicts = append(conflicts, core.Conflict{
				Identity: id,
				Previous: was,
				New:      now,
				TurnSeq:  turnSeq,
			})
		}
	}
	return out, conflicts
}

// mergeAlternatives applies replace-vs-accumulate: a new alternative set
// replaces every previous set it shares at least one member with (taking the
// first such set's position), otherwise it accumulates at the end.
func mergeAlternatives(prev, next [][]core.ID) [][]core.ID {
	merged := prev
	for _, newSet := range next {
		replaceAt := -1
		out := merged[:0]
		for i, set := range merged {
			if !sharesMember(set, newSet) {
				out = append(out, set)
				continue
			}
			if replaceAt < 0 {
				replaceAt = i
				out = append(out, newSet)
			}
		}
		if replaceAt < 0 {
			out = append(out, newSet)
		}
		merged = out
	}
	return merged
}

func sharesMember(a, b []core.ID) bool {
	for _, id := range a {
		if slices.Contains(b, id) {
			return true
		}
	}
	return false
}

// mergeGroups unions ingredient groups by name; a restated group replaces
// the previous member set under that name.
func mergeGroups(prev, next []core.IngredientGroup) []core.IngredientGroup {
	for _, g := range next {
		replaced := false
		for i, existing := range prev {
			if existing.Name == g.Name {
				prev[i] = g
				replaced = true
				break
			}
		}
		if !replaced {
			prev = append(prev, g)
		}
	}
	return prev
}
