package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastegraph/recipechat/ai"
	"github.com/tastegraph/recipechat/ai/mock"
	"github.com/tastegraph/recipechat/conversation"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/resolve"
	"github.com/tastegraph/recipechat/search"
	"github.com/tastegraph/recipechat/storage/badger"
)

func testConfig() *Config {
	return &Config{
		Host:           "127.0.0.1",
		Port:           8080,
		DataDir:        "/tmp/recipechat-test",
		AllowOrigins:   []string{"*"},
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		SessionBackend: "badger",
	}
}

func newTestServer(t *testing.T) (*Server, *mock.MockQueryExtractor) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	ctx := context.Background()
	_, err = repos.Ingredients.AddIngredients(ctx,
		&core.CanonicalIngredient{Name: "tomato", Variants: []string{"tomatoes"}},
	)
	require.NoError(t, err)
	_, err = repos.Tags.AddTags(ctx,
		&core.Tag{Name: "breakfast", Group: core.TagGroupMealCourses},
	)
	require.NoError(t, err)
	_, err = repos.Recipes.AddRecipes(ctx,
		&core.Recipe{
			Name:           "tomato omelette",
			Ingredients:    []core.ID{core.IngredientIDFromName("tomato")},
			RawIngredients: []string{"2 eggs", "1 tomato"},
			Tags:           []core.ID{core.TagIDFromName(core.TagGroupMealCourses, "breakfast")},
			Nutrition:      core.Nutrition{CaloriesKcal: 220, ProteinG: 14},
			Vector:         []float32{1, 0, 0},
		},
	)
	require.NoError(t, err)

	cache := resolve.NewCache(repos.Ingredients, repos.Tags)
	require.NoError(t, cache.Reload(ctx))

	extractor := mock.NewMockQueryExtractor()
	extractor.ExtractTagsFunc = func(ctx context.Context, message string) (*ai.TagMentions, error) {
		if strings.Contains(message, "breakfast") {
			return &ai.TagMentions{MealCourses: "breakfast"}, nil
		}
		return &ai.TagMentions{}, nil
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), extractor)

	searcher, err := search.NewSearcher(repos.Recipes, cache, provider)
	require.NoError(t, err)

	manager, err := conversation.NewManager(repos.Sessions, searcher, cache, provider,
		conversation.WithRetryBackoff(time.Millisecond))
	require.NoError(t, err)

	srv, err := New(testConfig(), manager)
	require.NoError(t, err)
	return srv, extractor
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestNew_RequiresManager(t *testing.T) {
	_, err := New(testConfig(), nil)
	assert.ErrorIs(t, err, ErrManagerRequired)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateSession(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["session_key"])
}

func TestSubmitTurn(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/test-session/turns",
		`{"message": "breakfast ideas"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp turnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test-session", resp.SessionKey)
	assert.Equal(t, 1, resp.Seq)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "tomato omelette", resp.Recipes[0].Name)
	require.NotNil(t, resp.Recipes[0].Nutrition)
	assert.InDelta(t, 220, resp.Recipes[0].Nutrition.CaloriesKcal, 0.001)
	assert.NotEmpty(t, resp.Summary)
}

func TestSubmitTurn_MissingMessage(t *testing.T) {
	srv, _ := newTestServer(t)
	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/test-session/turns", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitTurn_ExtractionFailure(t *testing.T) {
	srv, extractor := newTestServer(t)
	extractor.ExtractQueryFunc = func(ctx context.Context, message string) (*ai.ExtractedQuery, error) {
		return nil, errors.New("oracle down")
	}

	w := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/test-session/turns",
		`{"message": "anything"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	// Unknown session
	w := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// One turn creates it
	w = doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/lifecycle/turns",
		`{"message": "breakfast ideas"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions/lifecycle", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Turns)

	// Delete is idempotent
	w = doJSON(t, srv.Handler(), http.MethodDelete, "/api/v1/sessions/lifecycle", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, srv.Handler(), http.MethodDelete, "/api/v1/sessions/lifecycle", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions/lifecycle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
