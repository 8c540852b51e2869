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

	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/core"
)

// TagGroupLookup resolves a tag identity to its stored tag, or nil when
// unknown. The reference snapshot satisfies this.
type TagGroupLookup interface {
	TagByID(id core.ID) *core.Tag
}

// Decision is the binary continuation outcome for one turn.
type Decision struct {
	Reset  bool
	Reason string
}

// DecideContinuation classifies a turn as continuing the current search or
// starting a new one. The oracle's hint wins when it gave one; otherwise a
// deterministic overlap policy applies: the turn resets the session only
// when its extracted ingredients and tags share nothing with the current
// query AND it introduces a cuisine or meal-course tag of its own. A
// brand-new session always continues (there is nothing to reset).
func DecideContinuation(hint ai.ContinuationHint, reason string, current, extracted core.RecipeQuery, tags TagGroupLookup) Decision {
	switch hint {
	case ai.HintContinue:
		return Decision{Reset: false, Reason: reason}
	case ai.HintReset:
		return Decision{Reset: true, Reason: reason}
	}

	if current.Empty() {
		return Decision{Reset: false, Reason: "first turn of session"}
	}

	if overlaps(collectIdentities(current), collectIdentities(extracted)) {
		return Decision{Reset: false, Reason: "shared ingredients or tags with current query"}
	}
	if !introducesTopicTag(extracted, tags) {
		return Decision{Reset: false, Reason: "no new cuisine or meal-course topic"}
	}
	return Decision{Reset: true, Reason: "disjoint constraints with a new cuisine or meal-course topic"}
}

func collectIdentities(q core.RecipeQuery) []core.ID {
	ids := make([]core.ID, 0,
		len(q.IncludeIngredients)+len(q.ExcludeIngredients)+
			len(q.RequiredTags)+len(q.ExcludedTags))
	ids = append(ids, q.IncludeIngredients...)
	ids = append(ids, q.ExcludeIngredients...)
	ids = append(ids, q.RequiredTags...)
	ids = append(ids, q.ExcludedTags...)
	for _, alt := range q.TagAlternatives {
		ids = append(ids, alt...)
	}
	return ids
}

func overlaps(a, b []core.ID) bool {
	for _, id := range b {
		if slices.Contains(a, id) {
			return true
		}
	}
	return false
}

// introducesTopicTag reports whether the extracted query names a cuisine or
// meal-course tag, the signal that the user changed subject rather than
// refined the current one.
func introducesTopicTag(q core.RecipeQuery, tags TagGroupLookup) bool {
	if tags == nil {
		return false
	}
	check := func(id core.ID) bool {
		tag := tags.TagByID(id)
		if tag == nil {
			return false
		}
		return tag.Group == core.TagGroupCuisinesRegional || tag.Group == core.TagGroupMealCourses
	}
	for _, id := range q.RequiredTags {
		if check(id) {
			return true
		}
	}
	for _, alt := range q.TagAlternatives {
		for _, id := range alt {
			if check(id) {
				return true
			}
		}
	}
	return false
}
