package api

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorly/savorly-server/internal/auth"
	"github.com/savorly/savorly-server/internal/config"
	"github.com/savorly/savorly-server/internal/search"
	"github.com/savorly/savorly-server/internal/service"
	"github.com/savorly/savorly-server/internal/store/sqlite"
)

// testKeyHex is a fixed 32-byte PASETO key for tests.
const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000001"

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api      humatest.TestAPI
	services *service.Services
}

// setupTestServer creates a fully wired server over a temp SQLite store
// and search index.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	index, err := search.NewIndex(search.Options{DataPath: dir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	cfg := &config.Config{}
	cfg.API.DefaultPageSize = 10
	cfg.API.MaxPageSize = 100
	cfg.API.DefaultRecipesLimit = 3

	services := service.New(st, tokenService, index, cfg, logger)

	s := NewServer(st, services, cfg, logger)
	t.Cleanup(s.Close)

	return &testServer{
		Server:   s,
		api:      humatest.Wrap(t, s.api),
		services: services,
	}
}

// registerUser creates a user via the API and returns its auth response.
func (ts *testServer) registerUser(t *testing.T, username string) (token string, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":      username + "@example.com",
		"username":   username,
		"password":   "correct-horse-battery",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	var registerEnvelope testEnvelope[UserResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &registerEnvelope))

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    username + "@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var loginEnvelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &loginEnvelope))

	return loginEnvelope.Data.AccessToken, registerEnvelope.Data.ID
}

// seedCatalog inserts a tag and two ingredients directly through the
// services, the way the seed tool does.
func (ts *testServer) seedCatalog(t *testing.T) (tagID, flourID, milkID string) {
	t.Helper()
	ctx := context.Background()

	tag, err := ts.services.Tag.Create(ctx, service.CreateTagRequest{Name: "Dinner", Color: "#00AA00", Slug: "dinner"})
	require.NoError(t, err)

	flour, err := ts.services.Ingredient.Create(ctx, service.CreateIngredientRequest{Name: "flour", MeasurementUnit: "g"})
	require.NoError(t, err)

	milk, err := ts.services.Ingredient.Create(ctx, service.CreateIngredientRequest{Name: "milk", MeasurementUnit: "ml"})
	require.NoError(t, err)

	return tag.ID, flour.ID, milk.ID
}

// createRecipe creates a recipe via the API and returns its ID.
func (ts *testServer) createRecipe(t *testing.T, token, name, tagID, ingredientID string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/recipes",
		map[string]any{
			"name":         name,
			"text":         "Mix and fry.",
			"cooking_time": 20,
			"tags":         []string{tagID},
			"ingredients":  []map[string]any{{"id": ingredientID, "amount": 200}},
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, "create recipe failed: %s", resp.Body.String())

	var envelope testEnvelope[RecipeResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data.ID
}

// === Tests ===

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Contains(t, []string{"healthy", "degraded"}, envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
}

func TestUnknownRouteReturns404(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/nonexistent")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
