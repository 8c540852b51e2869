package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastegraph/recipechat/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IngredientIDFromName("tomato")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalRecipe(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		recipe *core.Recipe
	}{
		{
			name: "minimal recipe",
			recipe: &core.Recipe{
				Id:         core.ID(1),
				Name:       "Plain Toast",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "recipe with ingredients and tags",
			recipe: &core.Recipe{
				Id:             core.ID(2),
				Name:           "Tomato Pasta",
				Description:    "Simple weeknight pasta",
				Ingredients:    []core.ID{core.IngredientIDFromName("tomato"), core.IngredientIDFromName("pasta")},
				RawIngredients: []string{"2 cups crushed tomatoes", "200g spaghetti"},
				Tags:           []core.ID{core.TagIDFromName(core.TagGroupMealCourses, "dinner")},
				Steps:          []string{"Boil pasta", "Simmer sauce", "Combine"},
				Servings:       2,
				ServingSize:    "1 bowl",
				InsertedAt:     now,
				UpdatedAt:      now,
			},
		},
		{
			name: "recipe with nutrition and vector",
			recipe: &core.Recipe{
				Id:          core.ID(3),
				Name:        "Green Salad",
				Servings:    1,
				ServingSize: "1 plate",
				Nutrition: core.Nutrition{
					CaloriesKcal: 180.5,
					FatG:         12.2,
					CarbsG:       10.1,
					ProteinG:     4.8,
				},
				Vector:     []float32{0.1, 0.2, 0.3, 0.4, 0.5},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode name",
			recipe: &core.Recipe{
				Id:         core.ID(4),
				Name:       "Crème brûlée 焦糖布丁",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalRecipe(tt.recipe)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalRecipe(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			// Verify fields
			assert.Equal(t, tt.recipe.Id, decoded.Id)
			assert.Equal(t, tt.recipe.Name, decoded.Name)
			assert.Equal(t, tt.recipe.Description, decoded.Description)
			assert.Equal(t, tt.recipe.Servings, decoded.Servings)
			assert.Equal(t, tt.recipe.ServingSize, decoded.ServingSize)
			assert.Equal(t, tt.recipe.Nutrition, decoded.Nutrition)
			assert.True(t, tt.recipe.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.recipe.UpdatedAt.Equal(decoded.UpdatedAt))
			// Handle nil vs empty slice
			if len(tt.recipe.Ingredients) == 0 {
				assert.Empty(t, decoded.Ingredients)
			} else {
				assert.Equal(t, tt.recipe.Ingredients, decoded.Ingredients)
			}
			if len(tt.recipe.Tags) == 0 {
				assert.Empty(t, decoded.Tags)
			} else {
				assert.Equal(t, tt.recipe.Tags, decoded.Tags)
			}
			if len(tt.recipe.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.recipe.Vector, decoded.Vector)
			}
		})
	}
}

func TestUnmarshalRecipe_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRecipe(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalIngredient(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name       string
		ingredient *core.CanonicalIngredient
	}{
		{
			name: "minimal ingredient",
			ingredient: &core.CanonicalIngredient{
				Id:         core.IngredientIDFromName("salt"),
				Name:       "salt",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "ingredient with variants and vector",
			ingredient: &core.CanonicalIngredient{
				Id:         core.IngredientIDFromName("tomato"),
				Name:       "tomato",
				Variants:   []string{"tomatoes", "cherry tomato", "roma tomato"},
				Vector:     []float32{0.1, 0.2, 0.3, 0.4},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "ingredient with long vector",
			ingredient: &core.CanonicalIngredient{
				Id:         core.IngredientIDFromName("basil"),
				Name:       "basil",
				Vector:     make([]float32, 384),
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalIngredient(tt.ingredient)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalIngredient(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.ingredient.Id, decoded.Id)
			assert.Equal(t, tt.ingredient.Name, decoded.Name)
			assert.True(t, tt.ingredient.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.ingredient.UpdatedAt.Equal(decoded.UpdatedAt))
			if len(tt.ingredient.Variants) == 0 {
				assert.Empty(t, decoded.Variants)
			} else {
				assert.Equal(t, tt.ingredient.Variants, decoded.Variants)
			}
			if len(tt.ingredient.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.ingredient.Vector, decoded.Vector)
			}
		})
	}
}

func TestMarshalUnmarshalTag(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		tag  *core.Tag
	}{
		{
			name: "time duration tag",
			tag: &core.Tag{
				Id:         core.TagIDFromName(core.TagGroupTimeDuration, "30-minutes-or-less"),
				Name:       "30-minutes-or-less",
				Group:      core.TagGroupTimeDuration,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "dietary tag with vector",
			tag: &core.Tag{
				Id:         core.TagIDFromName(core.TagGroupDietaryHealth, "vegan"),
				Name:       "vegan",
				Group:      core.TagGroupDietaryHealth,
				Vector:     []float32{0.5, 0.4, 0.3},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalTag(tt.tag)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalTag(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.tag.Id, decoded.Id)
			assert.Equal(t, tt.tag.Name, decoded.Name)
			assert.Equal(t, tt.tag.Group, decoded.Group)
			if len(tt.tag.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.tag.Vector, decoded.Vector)
			}
		})
	}
}

func TestMarshalUnmarshalSessionState(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	query := core.NewRecipeQuery()
	query.FreeText = "quick vegetarian dinner"
	query.IncludeIngredients = []core.ID{core.IngredientIDFromName("tomato")}
	query.ExcludeIngredients = []core.ID{core.IngredientIDFromName("garlic")}
	query.RequiredTags = []core.ID{core.TagIDFromName(core.TagGroupDietaryHealth, "vegetarian")}
	query.TagAlternatives = [][]core.ID{
		{
			core.TagIDFromName(core.TagGroupCuisinesRegional, "italian"),
			core.TagIDFromName(core.TagGroupCuisinesRegional, "greek"),
		},
	}
	query.IncludeGroups = []core.IngredientGroup{
		{
			Name:    "tomato or pepper",
			Members: []core.ID{core.IngredientIDFromName("tomato"), core.IngredientIDFromName("pepper")},
		},
	}

	state := core.NewSessionState("session-abc")
	state.CreatedAt = now
	state.UpdatedAt = now
	state.AppendTurn(core.ConversationTurn{
		Seq:       1,
		Message:   "quick vegetarian dinner with tomatoes, no garlic",
		Extracted: query.Clone(),
		Merged:    query.Clone(),
		ResultIds: []core.ID{core.ID(11), core.ID(22)},
		Timestamp: now,
	})

	data := MarshalSessionState(state)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalSessionState(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, state.Key, decoded.Key)
	require.Len(t, decoded.Turns, 1)
	assert.Equal(t, state.Turns[0].Seq, decoded.Turns[0].Seq)
	assert.Equal(t, state.Turns[0].Message, decoded.Turns[0].Message)
	assert.True(t, state.Turns[0].Merged.Equal(decoded.Turns[0].Merged))
	assert.Equal(t, state.Turns[0].ResultIds, decoded.Turns[0].ResultIds)
	assert.True(t, state.Current.Equal(decoded.Current))
	assert.True(t, state.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, state.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestUnmarshalSessionState_Invalid(t *testing.T) {
	_, err := UnmarshalSessionState([]byte{0xFF, 0xFF})
	assert.Error(t, err)
}

func TestRoundTripConsistency(t *testing.T) {
	t.Run("multiple marshal-unmarshal cycles", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		original := &core.Recipe{
			Id:             core.ID(999),
			Name:           "Consistency Stew",
			Ingredients:    []core.ID{core.IngredientIDFromName("carrot")},
			RawIngredients: []string{"3 carrots, diced"},
			Steps:          []string{"Chop", "Simmer"},
			Servings:       4,
			Vector:         []float32{0.1, 0.2, 0.3},
			InsertedAt:     now,
			UpdatedAt:      now,
		}

		// Perform 3 marshal-unmarshal cycles
		current := original
		for i := 0; i < 3; i++ {
			data := MarshalRecipe(current)
			decoded, err := UnmarshalRecipe(data)
			require.NoError(t, err)
			current = decoded
		}

		// Verify final result matches original
		assert.Equal(t, original.Id, current.Id)
		assert.Equal(t, original.Name, current.Name)
		assert.Equal(t, original.Ingredients, current.Ingredients)
		assert.Equal(t, original.Steps, current.Steps)
		assert.Equal(t, original.Vector, current.Vector)
	})
}
