package core

import "slices"

// RecipeQuery is the accumulated, mergeable search intent for one session.
//
// Ingredient and tag membership is expressed in canonical identities only;
// raw text never reaches the filter phase. Invariant: an identity never
// appears in an include/require set and its corresponding exclude set at
// the same time. The merge engine enforces this by removal-on-conflict.
type RecipeQuery struct {
	// FreeText is the natural-language remainder used for semantic ranking.
	FreeText string
	// IncludeIngredients must all be present in a matching recipe.
	IncludeIngredients []ID
	// IncludeGroups are broader categories; each group is satisfied by at
	// least one member being present.
	IncludeGroups []IngredientGroup
	// ExcludeIngredients must all be absent.
	ExcludeIngredients []ID
	// RequiredTags must all be present (AND semantics), in statement order.
	RequiredTags []ID
	// TagAlternatives is a sequence of tag-sets; each set is satisfied by
	// at least one member being present (OR within a set, AND across sets).
	TagAlternatives [][]ID
	// ExcludedTags must all be absent.
	ExcludedTags []ID
	// ResultCount is the requested number of results, bounded
	// [MinResultCount, MaxResultCount]. Zero means "not stated".
	ResultCount int
}

// NewRecipeQuery returns an empty query with the default result count.
func NewRecipeQuery() RecipeQuery {
	return RecipeQuery{ResultCount: DefaultResultCount}
}

// Clone returns a deep copy of the query.
func (q RecipeQuery) Clone() RecipeQuery {
	out := q
	out.IncludeIngredients = slices.Clone(q.IncludeIngredients)
	out.ExcludeIngredients = slices.Clone(q.ExcludeIngredients)
	out.RequiredTags = slices.Clone(q.RequiredTags)
	out.ExcludedTags = slices.Clone(q.ExcludedTags)
	if q.IncludeGroups != nil {
		out.IncludeGroups = make([]IngredientGroup, len(q.IncludeGroups))
		for i, g := range q.IncludeGroups {
			out.IncludeGroups[i] = IngredientGroup{Name: g.Name, Members: slices.Clone(g.Members)}
		}
	}
	if q.TagAlternatives != nil {
		out.TagAlternatives = make([][]ID, len(q.TagAlternatives))
		for i, alt := range q.TagAlternatives {
			out.TagAlternatives[i] = slices.Clone(alt)
		}
	}
	return out
}

// Empty reports whether the query carries no constraints and no free text.
func (q RecipeQuery) Empty() bool {
	return q.FreeText == "" &&
		len(q.IncludeIngredients) == 0 &&
		len(q.IncludeGroups) == 0 &&
		len(q.ExcludeIngredients) == 0 &&
		len(q.RequiredTags) == 0 &&
		len(q.TagAlternatives) == 0 &&
		len(q.ExcludedTags) == 0
}

// EffectiveResultCount returns the bounded result count, substituting the
// default when the count was never stated.
func (q RecipeQuery) EffectiveResultCount() int {
	switch {
	case q.ResultCount == 0:
		return DefaultResultCount
	case q.ResultCount < MinResultCount:
		return MinResultCount
	case q.ResultCount > MaxResultCount:
		return MaxResultCount
	default:
		return q.ResultCount
	}
}

// Equal reports whether two queries are identical, member for member and
// in order. Used by the merge engine's idempotence checks.
func (q RecipeQuery) Equal(other RecipeQuery) bool {
	if q.FreeText != other.FreeText || q.ResultCount != other.ResultCount {
		return false
	}
	if !slices.Equal(q.IncludeIngredients, other.IncludeIngredients) ||
		!slices.Equal(q.ExcludeIngredients, other.ExcludeIngredients) ||
		!slices.Equal(q.RequiredTags, other.RequiredTags) ||
		!slices.Equal(q.ExcludedTags, other.ExcludedTags) {
		return false
	}
	if len(q.IncludeGroups) != len(other.IncludeGroups) {
		return false
	}
	for i, g := range q.IncludeGroups {
		if g.Name != other.IncludeGroups[i].Name || !slices.Equal(g.Members, other.IncludeGroups[i].Members) {
			return false
		}
	}
	if len(q.TagAlternatives) != len(other.TagAlternatives) {
		return false
	}
	for i, alt := range q.TagAlternatives {
		if !slices.Equal(alt, other.TagAlternatives[i]) {
			return false
		}
	}
	return true
}
