package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/savorly/savorly-server/internal/auth"
	"github.com/savorly/savorly-server/internal/config"
	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/search"
	"github.com/savorly/savorly-server/internal/store"
	"github.com/savorly/savorly-server/internal/store/sqlite"
)

// testKeyHex is a fixed 32-byte key for token tests.
const testKeyHex = "0000000000000000000000000000000000000000000000000000000000000001"

func setupTestServices(t *testing.T) (*Services, store.Store) {
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

	return New(st, tokenService, index, cfg, logger), st
}

func registerTestUser(t *testing.T, svcs *Services, username string) *domain.User {
	t.Helper()
	user, err := svcs.Auth.Register(context.Background(), RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		Password:  "correct-horse-battery",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return user
}

func seedTestCatalog(t *testing.T, svcs *Services) (tagID, flourID, milkID string) {
	t.Helper()
	ctx := context.Background()

	tag, err := svcs.Tag.Create(ctx, CreateTagRequest{Name: "Dinner", Color: "#00AA00", Slug: "dinner"})
	require.NoError(t, err)

	flour, err := svcs.Ingredient.Create(ctx, CreateIngredientRequest{Name: "flour", MeasurementUnit: "g"})
	require.NoError(t, err)

	milk, err := svcs.Ingredient.Create(ctx, CreateIngredientRequest{Name: "milk", MeasurementUnit: "ml"})
	require.NoError(t, err)

	return tag.ID, flour.ID, milk.ID
}

func createTestRecipe(t *testing.T, svcs *Services, authorID, tagID, ingredientID string) *RecipeView {
	t.Helper()
	view, err := svcs.Recipe.Create(context.Background(), authorID, WriteRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []string{tagID},
		Ingredients: []IngredientLineRequest{{ID: ingredientID, Amount: 200}},
	})
	require.NoError(t, err)
	return view
}
