package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorly/savorly-server/internal/domain"
)

func TestShoppingListAggregatesAcrossRecipes(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	shopper := registerTestUser(t, svcs, "bob")
	tagID, flourID, milkID := seedTestCatalog(t, svcs)

	first, err := svcs.Recipe.Create(ctx, author.ID, WriteRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []string{tagID},
		Ingredients: []IngredientLineRequest{
			{ID: flourID, Amount: 200},
			{ID: milkID, Amount: 300},
		},
	})
	require.NoError(t, err)

	second, err := svcs.Recipe.Create(ctx, author.ID, WriteRecipeRequest{
		Name:        "Flatbread",
		Text:        "Knead and bake.",
		CookingTime: 30,
		TagIDs:      []string{tagID},
		Ingredients: []IngredientLineRequest{{ID: flourID, Amount: 50}},
	})
	require.NoError(t, err)

	for _, id := range []string{first.ID, second.ID} {
		_, err := svcs.Relation.Add(ctx, domain.RelationCart, shopper.ID, id)
		require.NoError(t, err)
	}

	text, err := svcs.ShoppingList.Render(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour (g) — 250\nmilk (ml) — 300\n", text)
}

func TestShoppingListEmptyCart(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	shopper := registerTestUser(t, svcs, "bob")

	text, err := svcs.ShoppingList.Render(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestShoppingListFollowsCartChanges(t *testing.T) {
	svcs, _ := setupTestServices(t)
	ctx := context.Background()

	author := registerTestUser(t, svcs, "alice")
	shopper := registerTestUser(t, svcs, "bob")
	tagID, flourID, _ := seedTestCatalog(t, svcs)
	view := createTestRecipe(t, svcs, author.ID, tagID, flourID)

	_, err := svcs.Relation.Add(ctx, domain.RelationCart, shopper.ID, view.ID)
	require.NoError(t, err)

	items, err := svcs.ShoppingList.Items(ctx, shopper.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svcs.Relation.Remove(ctx, domain.RelationCart, shopper.ID, view.ID))

	items, err = svcs.ShoppingList.Items(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
