package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

func TestRecipeBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	recipe := &core.Recipe{
		Name:           "Tomato Pasta",
		Description:    "Simple weeknight pasta",
		Ingredients:    []core.ID{core.IngredientIDFromName("tomato")},
		RawIngredients: []string{"2 cups crushed tomatoes"},
		Steps:          []string{"Boil", "Simmer", "Combine"},
		Servings:       2,
	}

	added, err := repos.Recipes.AddRecipes(ctx, recipe)
	if err != nil {
		t.Fatalf("Failed to add recipe: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 recipe, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := repos.Recipes.GetRecipe(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get recipe: %v", err)
	}
	if retrieved.Name != "Tomato Pasta" {
		t.Fatalf("Expected 'Tomato Pasta', got '%s'", retrieved.Name)
	}
	if len(retrieved.Steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(retrieved.Steps))
	}

	count, err := repos.Recipes.CountRecipes(ctx)
	if err != nil {
		t.Fatalf("Failed to count recipes: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected count 1, got %d", count)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	_, err = repos.Recipes.GetRecipe(context.Background(), core.ID(12345))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetAllRecipes(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	recipes := []*core.Recipe{
		{Name: "Salad"},
		{Name: "Soup"},
		{Name: "Stew"},
	}
	if _, err := repos.Recipes.AddRecipes(ctx, recipes...); err != nil {
		t.Fatalf("Failed to add recipes: %v", err)
	}

	all, err := repos.Recipes.GetAllRecipes(ctx)
	if err != nil {
		t.Fatalf("Failed to get all recipes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 recipes, got %d", len(all))
	}
}

func TestRankBySimilarity(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	recipes := []*core.Recipe{
		{Name: "Tomato Soup", Vector: []float32{1, 0, 0}},
		{Name: "Basil Pesto", Vector: []float32{0, 1, 0}},
		{Name: "Garlic Bread", Vector: []float32{0, 0, 1}},
		{Name: "No Vector"},
	}
	added, err := repos.Recipes.AddRecipes(ctx, recipes...)
	if err != nil {
		t.Fatalf("Failed to add recipes: %v", err)
	}

	// Rank whole corpus
	ranked, err := repos.Recipes.RankBySimilarity(ctx, []float32{0.9, 0.3, 0}, nil, 10)
	if err != nil {
		t.Fatalf("Failed to rank: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 ranked recipes (no-vector skipped), got %d", len(ranked))
	}
	if ranked[0].Recipe.Name != "Tomato Soup" {
		t.Fatalf("Expected 'Tomato Soup' first, got '%s'", ranked[0].Recipe.Name)
	}
	if ranked[0].Score < ranked[1].Score {
		t.Fatal("Expected descending score order")
	}

	// Rank a candidate subset
	candidates := []core.ID{added[1].Id, added[2].Id}
	ranked, err = repos.Recipes.RankBySimilarity(ctx, []float32{0.9, 0.3, 0}, candidates, 10)
	if err != nil {
		t.Fatalf("Failed to rank candidates: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 ranked candidates, got %d", len(ranked))
	}
	for _, rr := range ranked {
		if rr.Recipe.Name == "Tomato Soup" {
			t.Fatal("Non-candidate recipe leaked into results")
		}
	}

	// Limit applies
	ranked, err = repos.Recipes.RankBySimilarity(ctx, []float32{0.9, 0.3, 0}, nil, 1)
	if err != nil {
		t.Fatalf("Failed to rank with limit: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(ranked))
	}
}

func TestUpdateAndDeleteRecipes(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Recipes.AddRecipes(ctx, &core.Recipe{Name: "Draft Dish"})
	if err != nil {
		t.Fatalf("Failed to add recipe: %v", err)
	}

	added[0].Description = "now with a description"
	updated, err := repos.Recipes.UpdateRecipes(ctx, added[0])
	if err != nil {
		t.Fatalf("Failed to update recipe: %v", err)
	}
	if updated[0].Description != "now with a description" {
		t.Fatalf("Expected updated description, got %q", updated[0].Description)
	}

	if err := repos.Recipes.DeleteRecipes(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete recipe: %v", err)
	}
	_, err = repos.Recipes.GetRecipe(ctx, added[0].Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Updating a missing recipe fails
	_, err = repos.Recipes.UpdateRecipes(ctx, added[0])
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
