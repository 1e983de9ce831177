package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)
	tagID, flourID, _ := ts.seedCatalog(t)

	resp := ts.api.Post("/api/v1/recipes", map[string]any{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"cooking_time": 20,
		"tags":         []string{tagID},
		"ingredients":  []map[string]any{{"id": flourID, "amount": 200}},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateRecipe_ReturnsFullProjection(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.registerUser(t, "alice")
	tagID, flourID, _ := ts.seedCatalog(t)

	resp := ts.api.Post("/api/v1/recipes",
		map[string]any{
			"name":         "Pancakes",
			"text":         "Mix and fry.",
			"cooking_time": 20,
			"tags":         []string{tagID},
			"ingredients":  []map[string]any{{"id": flourID, "amount": 200}},
		},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var envelope testEnvelope[RecipeResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	recipe := envelope.Data
	assert.NotEmpty(t, recipe.ID)
	assert.Equal(t, "Pancakes", recipe.Name)
	assert.Equal(t, userID, recipe.Author.ID)
	require.Len(t, recipe.Tags, 1)
	assert.Equal(t, "dinner", recipe.Tags[0].Slug)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "flour", recipe.Ingredients[0].Name)
	assert.Equal(t, "g", recipe.Ingredients[0].MeasurementUnit)
	assert.Equal(t, 200, recipe.Ingredients[0].Amount)
	assert.False(t, recipe.IsFavorited)
	assert.False(t, recipe.IsInShoppingCart)
}

func TestCreateRecipe_UnknownTagRejected(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "alice")
	_, flourID, _ := ts.seedCatalog(t)

	resp := ts.api.Post("/api/v1/recipes",
		map[string]any{
			"name":         "Pancakes",
			"text":         "Mix and fry.",
			"cooking_time": 20,
			"tags":         []string{"tag-missing"},
			"ingredients":  []map[string]any{{"id": flourID, "amount": 200}},
		},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetRecipe_AnonymousSeesFalseFlags(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "alice")
	tagID, flourID, _ := ts.seedCatalog(t)
	recipeID := ts.createRecipe(t, token, "Pancakes", tagID, flourID)

	// Favorite it as the author so the viewer-dependence is observable.
	resp := ts.api.Post("/api/v1/recipes/"+recipeID+"/favorite",
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	// Anonymous view: flags are false.
	resp = ts.api.Get("/api/v1/recipes/" + recipeID)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[RecipeResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.IsFavorited)

	// Authenticated view: favorite flag is set.
	resp = ts.api.Get("/api/v1/recipes/"+recipeID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.IsFavorited)
}

func TestUpdateRecipe_AuthorOnly(t *testing.T) {
	ts := setupTestServer(t)
	aliceToken, _ := ts.registerUser(t, "alice")
	bobToken, _ := ts.registerUser(t, "bob")
	tagID, flourID, _ := ts.seedCatalog(t)
	recipeID := ts.createRecipe(t, aliceToken, "Pancakes", tagID, flourID)

	body := map[string]any{
		"name":         "Crepes",
		"text":         "Thinner.",
		"cooking_time": 15,
		"tags":         []string{tagID},
		"ingredients":  []map[string]any{{"id": flourID, "amount": 100}},
	}

	resp := ts.api.Patch("/api/v1/recipes/"+recipeID, body,
		"Authorization: Bearer "+bobToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Patch("/api/v1/recipes/"+recipeID, body,
		"Authorization: Bearer "+aliceToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[RecipeResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "Crepes", envelope.Data.Name)
	assert.Equal(t, 15, envelope.Data.CookingTime)
}

func TestDeleteRecipe_AuthorOnlyThenGone(t *testing.T) {
	ts := setupTestServer(t)
	aliceToken, _ := ts.registerUser(t, "alice")
	bobToken, _ := ts.registerUser(t, "bob")
	tagID, flourID, _ := ts.seedCatalog(t)
	recipeID := ts.createRecipe(t, aliceToken, "Pancakes", tagID, flourID)

	resp := ts.api.Delete("/api/v1/recipes/"+recipeID,
		"Authorization: Bearer "+bobToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Delete("/api/v1/recipes/"+recipeID,
		"Authorization: Bearer "+aliceToken)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/recipes/" + recipeID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListRecipes_TagFilterAndPagination(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "alice")
	tagID, flourID, _ := ts.seedCatalog(t)

	ts.createRecipe(t, token, "Pancakes", tagID, flourID)
	ts.createRecipe(t, token, "Waffles", tagID, flourID)

	resp := ts.api.Get("/api/v1/recipes?tags=dinner&limit=1&page=1")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListRecipesResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 2, envelope.Data.Total)
	require.Len(t, envelope.Data.Recipes, 1)
	// Newest first.
	assert.Equal(t, "Waffles", envelope.Data.Recipes[0].Name)

	resp = ts.api.Get("/api/v1/recipes?tags=missing-slug")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Zero(t, envelope.Data.Total)
}

func TestListRecipes_FavoriteFilterIgnoredForAnonymous(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "alice")
	tagID, flourID, _ := ts.seedCatalog(t)
	recipeID := ts.createRecipe(t, token, "Pancakes", tagID, flourID)
	ts.createRecipe(t, token, "Waffles", tagID, flourID)

	resp := ts.api.Post("/api/v1/recipes/"+recipeID+"/favorite",
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	// Authenticated: filter narrows to the favorited recipe.
	resp = ts.api.Get("/api/v1/recipes?is_favorited=true", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListRecipesResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Equal(t, 1, envelope.Data.Total)
	assert.Equal(t, recipeID, envelope.Data.Recipes[0].ID)

	// Anonymous: the filter is ignored, all recipes come back.
	resp = ts.api.Get("/api/v1/recipes?is_favorited=true")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.Total)
}
