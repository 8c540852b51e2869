package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/storage"
)

func TestSessionSaveLoad(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	query := core.NewRecipeQuery()
	query.FreeText = "quick dinner"
	query.ExcludeIngredients = []core.ID{core.IngredientIDFromName("garlic")}

	state := core.NewSessionState("session-1")
	state.AppendTurn(core.ConversationTurn{
		Seq:       1,
		Message:   "quick dinner, no garlic",
		Extracted: query.Clone(),
		Merged:    query.Clone(),
	})

	if err := repos.Sessions.SaveSession(ctx, state); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := repos.Sessions.LoadSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded.Key != "session-1" {
		t.Fatalf("Expected key 'session-1', got '%s'", loaded.Key)
	}
	if len(loaded.Turns) != 1 {
		t.Fatalf("Expected 1 turn, got %d", len(loaded.Turns))
	}
	if !loaded.Current.Equal(state.Current) {
		t.Fatal("Loaded current query does not match saved state")
	}
}

func TestSessionSaveReplaces(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	state := core.NewSessionState("session-2")
	if err := repos.Sessions.SaveSession(ctx, state); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	state.AppendTurn(core.ConversationTurn{Seq: 1, Message: "first"})
	if err := repos.Sessions.SaveSession(ctx, state); err != nil {
		t.Fatalf("Failed to re-save session: %v", err)
	}

	loaded, err := repos.Sessions.LoadSession(ctx, "session-2")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if len(loaded.Turns) != 1 {
		t.Fatalf("Expected 1 turn after replace, got %d", len(loaded.Turns))
	}
}

func TestSessionNotFoundAndDelete(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	_, err = repos.Sessions.LoadSession(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Deleting a missing session is not an error
	if err := repos.Sessions.DeleteSession(ctx, "missing"); err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}

	state := core.NewSessionState("session-3")
	if err := repos.Sessions.SaveSession(ctx, state); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := repos.Sessions.DeleteSession(ctx, "session-3"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	_, err = repos.Sessions.LoadSession(ctx, "session-3")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestListSessionKeys(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := repos.Sessions.SaveSession(ctx, core.NewSessionState(key)); err != nil {
			t.Fatalf("Failed to save session %s: %v", key, err)
		}
	}

	keys, err := repos.Sessions.ListSessionKeys(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
}
