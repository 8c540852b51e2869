package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuery() RecipeQuery {
	return RecipeQuery{
		FreeText:           "something cozy",
		IncludeIngredients: []ID{IngredientIDFromName("tomato")},
		IncludeGroups: []IngredientGroup{
			{Name: "protein", Members: []ID{IngredientIDFromName("chicken"), IngredientIDFromName("tofu")}},
		},
		ExcludeIngredients: []ID{IngredientIDFromName("peanuts")},
		RequiredTags:       []ID{TagIDFromName(TagGroupMealCourses, "main-dish")},
		TagAlternatives: [][]ID{
			{TagIDFromName(TagGroupDietaryHealth, "vegetarian"), TagIDFromName(TagGroupDietaryHealth, "vegan")},
		},
		ExcludedTags: []ID{TagIDFromName(TagGroupPreparationMethod, "deep-fried")},
		ResultCount:  3,
	}
}

func TestRecipeQuery_Clone(t *testing.T) {
	q := sampleQuery()
	clone := q.Clone()

	assert.True(t, q.Equal(clone))

	clone.IncludeIngredients[0] = IngredientIDFromName("onion")
	clone.IncludeGroups[0].Members[0] = IngredientIDFromName("beef")
	clone.TagAlternatives[0][0] = TagIDFromName(TagGroupDietaryHealth, "gluten-free")

	assert.Equal(t, IngredientIDFromName("tomato"), q.IncludeIngredients[0])
	assert.Equal(t, IngredientIDFromName("chicken"), q.IncludeGroups[0].Members[0])
	assert.Equal(t, TagIDFromName(TagGroupDietaryHealth, "vegetarian"), q.TagAlternatives[0][0])
}

func TestRecipeQuery_Empty(t *testing.T) {
	assert.True(t, RecipeQuery{}.Empty())
	// The default result count alone does not make a query non-empty.
	assert.True(t, NewRecipeQuery().Empty())

	q := NewRecipeQuery()
	q.FreeText = "anything"
	assert.False(t, q.Empty())

	q = NewRecipeQuery()
	q.ExcludedTags = []ID{TagIDFromName(TagGroupDietaryHealth, "vegan")}
	assert.False(t, q.Empty())
}

func TestRecipeQuery_EffectiveResultCount(t *testing.T) {
	tests := []struct {
		name   string
		stated int
		want   int
	}{
		{"unstated uses default", 0, DefaultResultCount},
		{"within bounds", 7, 7},
		{"clamped low", -3, MinResultCount},
		{"clamped high", 50, MaxResultCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := RecipeQuery{ResultCount: tt.stated}
			assert.Equal(t, tt.want, q.EffectiveResultCount())
		})
	}
}

func TestRecipeQuery_Equal(t *testing.T) {
	q := sampleQuery()
	assert.True(t, q.Equal(sampleQuery()))

	reordered := sampleQuery()
	reordered.IncludeGroups[0].Members[0], reordered.IncludeGroups[0].Members[1] =
		reordered.IncludeGroups[0].Members[1], reordered.IncludeGroups[0].Members[0]
	assert.False(t, q.Equal(reordered), "member order is significant")

	altered := sampleQuery()
	altered.FreeText = "something else"
	assert.False(t, q.Equal(altered))
}

func TestValidateRecipeQuery(t *testing.T) {
	q := sampleQuery()
	assert.NoError(t, ValidateRecipeQuery(&q))

	assert.ErrorIs(t, ValidateRecipeQuery(nil), ErrInvalidQuery)

	outOfRange := sampleQuery()
	outOfRange.ResultCount = MaxResultCount + 1
	assert.ErrorIs(t, ValidateRecipeQuery(&outOfRange), ErrResultCountOutOfRange)

	contradiction := sampleQuery()
	contradiction.ExcludeIngredients = append(contradiction.ExcludeIngredients,
		contradiction.IncludeIngredients[0])
	assert.ErrorIs(t, ValidateRecipeQuery(&contradiction), ErrConflictingDirectives)

	tagContradiction := sampleQuery()
	tagContradiction.ExcludedTags = append(tagContradiction.ExcludedTags,
		tagContradiction.RequiredTags[0])
	assert.ErrorIs(t, ValidateRecipeQuery(&tagContradiction), ErrConflictingDirectives)
}
