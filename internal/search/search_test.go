package search

import (
	"context"
	"testing"
	"time"

	"github.com/savorly/savorly-server/internal/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(Options{DataPath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testDocs() []*RecipeDocument {
	now := time.Now()
	return []*RecipeDocument{
		{
			ID:          "rcp-pancakes",
			Name:        "Buttermilk Pancakes",
			Text:        "Fluffy breakfast pancakes.",
			Author:      "alice",
			TagSlugs:    []string{"breakfast"},
			Ingredients: []string{"flour", "buttermilk", "eggs"},
			CookingTime: 20,
			CreatedAt:   now.UnixMilli(),
		},
		{
			ID:          "rcp-curry",
			Name:        "Chickpea Curry",
			Text:        "A quick weeknight curry.",
			Author:      "bob",
			TagSlugs:    []string{"dinner", "vegan"},
			Ingredients: []string{"chickpeas", "coconut milk", "curry paste"},
			CookingTime: 35,
			CreatedAt:   now.Add(time.Minute).UnixMilli(),
		},
		{
			ID:          "rcp-salad",
			Name:        "Greek Salad",
			Text:        "No cooking required.",
			Author:      "alice",
			TagSlugs:    []string{"lunch", "vegan"},
			Ingredients: []string{"tomatoes", "cucumber", "feta"},
			CookingTime: 10,
			CreatedAt:   now.Add(2 * time.Minute).UnixMilli(),
		},
	}
}

func TestIndexAndSearchByName(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	params := DefaultParams()
	params.Query = "pancakes"
	result, err := idx.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Total == 0 {
		t.Fatal("expected at least one hit")
	}
	if result.Hits[0].ID != "rcp-pancakes" {
		t.Errorf("top hit: got %q, want rcp-pancakes", result.Hits[0].ID)
	}
	if result.Hits[0].Name != "Buttermilk Pancakes" {
		t.Errorf("stored name: got %q", result.Hits[0].Name)
	}
}

func TestSearchByIngredient(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	params := DefaultParams()
	params.Query = "chickpeas"
	result, err := idx.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Total == 0 || result.Hits[0].ID != "rcp-curry" {
		t.Errorf("expected rcp-curry as top hit, got %+v", result.Hits)
	}
}

func TestSearchFuzzyTypo(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	// One-character typo still finds the recipe.
	params := DefaultParams()
	params.Query = "pancaces"
	result, err := idx.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Total == 0 {
		t.Error("fuzzy match found nothing for a one-character typo")
	}
}

func TestSearchTagFilter(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	params := DefaultParams()
	params.TagSlugs = []string{"vegan"}
	result, err := idx.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("total: got %d, want 2", result.Total)
	}
	for _, hit := range result.Hits {
		if hit.ID == "rcp-pancakes" {
			t.Error("non-vegan recipe in vegan filter results")
		}
	}
}

func TestSearchMaxCookingTime(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	params := DefaultParams()
	params.MaxCookingTime = 25
	result, err := idx.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, hit := range result.Hits {
		if hit.CookingTime > 25 {
			t.Errorf("hit %s exceeds max cooking time: %d", hit.ID, hit.CookingTime)
		}
	}
	if result.Total != 2 {
		t.Errorf("total: got %d, want 2", result.Total)
	}
}

func TestSearchSortRecent(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	params := DefaultParams()
	params.SortBy = "recent"
	result, err := idx.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(result.Hits))
	}
	if result.Hits[0].ID != "rcp-salad" {
		t.Errorf("newest first: got %q, want rcp-salad", result.Hits[0].ID)
	}
}

func TestDeleteRecipe(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	if err := idx.DeleteRecipe("rcp-curry"); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	count, err := idx.DocumentCount()
	if err != nil {
		t.Fatalf("DocumentCount: %v", err)
	}
	if count != 2 {
		t.Errorf("count: got %d, want 2", count)
	}
}

func TestRebuildEmptiesIndex(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}

	if err := idx.Rebuild(); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	count, err := idx.DocumentCount()
	if err != nil {
		t.Fatalf("DocumentCount: %v", err)
	}
	if count != 0 {
		t.Errorf("count after rebuild: got %d, want 0", count)
	}

	// Index is usable after rebuild.
	doc := RecipeToDocument(&domain.Recipe{
		ID: "rcp-new", Name: "Toast", Text: "Toast bread.", CookingTime: 5,
	}, "alice", nil, []string{"bread"})
	if err := idx.IndexRecipe(doc); err != nil {
		t.Fatalf("IndexRecipe after rebuild: %v", err)
	}
}

func TestReopenKeepsDocuments(t *testing.T) {
	dir := t.TempDir()

	idx, err := NewIndex(Options{DataPath: dir})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if err := idx.IndexRecipes(testDocs()); err != nil {
		t.Fatalf("IndexRecipes: %v", err)
	}
	idx.Close()

	reopened, err := NewIndex(Options{DataPath: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.DocumentCount()
	if err != nil {
		t.Fatalf("DocumentCount: %v", err)
	}
	if count != 3 {
		t.Errorf("count after reopen: got %d, want 3", count)
	}
}
