package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

func TestTagBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	tag := &core.Tag{
		Name:  "vegan",
		Group: core.TagGroupDietaryHealth,
	}

	added, err := repos.Tags.AddTags(ctx, tag)
	if err != nil {
		t.Fatalf("Failed to add tag: %v", err)
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := repos.Tags.GetTag(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get tag: %v", err)
	}
	if retrieved.Name != "vegan" || retrieved.Group != core.TagGroupDietaryHealth {
		t.Fatalf("Unexpected tag: %+v", retrieved)
	}
}

func TestFindTagByName(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	tags := []*core.Tag{
		{Name: "italian", Group: core.TagGroupCuisinesRegional},
		{Name: "30-minutes-or-less", Group: core.TagGroupTimeDuration},
	}
	if _, err := repos.Tags.AddTags(ctx, tags...); err != nil {
		t.Fatalf("Failed to add tags: %v", err)
	}

	found, err := repos.Tags.FindTagByName(ctx, core.TagGroupCuisinesRegional, "Italian")
	if err != nil {
		t.Fatalf("Failed to find tag: %v", err)
	}
	if found.Name != "italian" {
		t.Fatalf("Expected 'italian', got '%s'", found.Name)
	}

	// Same name in a different group does not resolve
	_, err = repos.Tags.FindTagByName(ctx, core.TagGroupMealCourses, "italian")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestFindSimilarTag(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	tags := []*core.Tag{
		{Name: "italian", Group: core.TagGroupCuisinesRegional, Vector: []float32{1, 0, 0}},
		{Name: "greek", Group: core.TagGroupCuisinesRegional, Vector: []float32{0.9, 0.1, 0}},
		{Name: "dinner", Group: core.TagGroupMealCourses, Vector: []float32{0.95, 0, 0}},
	}
	if _, err := repos.Tags.AddTags(ctx, tags...); err != nil {
		t.Fatalf("Failed to add tags: %v", err)
	}

	// Group-scoped search ignores the closer tag from another group
	best, _, err := repos.Tags.FindSimilarTag(ctx, core.TagGroupCuisinesRegional, []float32{1, 0, 0}, 0.70)
	if err != nil {
		t.Fatalf("Failed to find similar tag: %v", err)
	}
	if best.Name != "italian" {
		t.Fatalf("Expected 'italian', got '%s'", best.Name)
	}

	// Unknown group searches everything
	best, _, err = repos.Tags.FindSimilarTag(ctx, core.TagGroupUnknown, []float32{0.95, 0, 0}, 0.70)
	if err != nil {
		t.Fatalf("Failed to find similar tag: %v", err)
	}
	if best.Name != "italian" && best.Name != "dinner" {
		t.Fatalf("Unexpected best tag '%s'", best.Name)
	}

	// Below threshold is ErrNotFound
	_, _, err = repos.Tags.FindSimilarTag(ctx, core.TagGroupCuisinesRegional, []float32{0, 0, 1}, 0.70)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTagReindexesName(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Tags.AddTags(ctx, &core.Tag{Name: "week-night", Group: core.TagGroupDifficultyScale})
	if err != nil {
		t.Fatalf("Failed to add tag: %v", err)
	}

	added[0].Name = "weeknight"
	if _, err := repos.Tags.UpdateTags(ctx, added[0]); err != nil {
		t.Fatalf("Failed to update tag: %v", err)
	}

	_, err = repos.Tags.FindTagByName(ctx, core.TagGroupDifficultyScale, "week-night")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for stale name, got %v", err)
	}
	found, err := repos.Tags.FindTagByName(ctx, core.TagGroupDifficultyScale, "weeknight")
	if err != nil {
		t.Fatalf("Failed to find renamed tag: %v", err)
	}
	if found.Id != added[0].Id {
		t.Fatalf("Expected ID %d, got %d", added[0].Id, found.Id)
	}
}
