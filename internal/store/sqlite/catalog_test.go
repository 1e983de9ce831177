package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

func TestCreateAndListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tags := []*domain.Tag{
		{ID: "tag-1", Name: "Dinner", Color: "#00FF00", Slug: "dinner"},
		{ID: "tag-2", Name: "Breakfast", Color: "#FF0000", Slug: "breakfast"},
	}
	for _, tag := range tags {
		if err := s.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag(%s): %v", tag.ID, err)
		}
	}

	got, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tags, want 2", len(got))
	}
	// Ordered by name.
	if got[0].Name != "Breakfast" || got[1].Name != "Dinner" {
		t.Errorf("order: got %q, %q", got[0].Name, got[1].Name)
	}
}

func TestCreateTagDuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateTag(ctx, &domain.Tag{ID: "tag-1", Name: "Lunch", Slug: "lunch"}); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	err := s.CreateTag(ctx, &domain.Tag{ID: "tag-2", Name: "Lunch Again", Slug: "lunch"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetTagsByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, tag := range []*domain.Tag{
		{ID: "tag-1", Name: "Dinner", Slug: "dinner"},
		{ID: "tag-2", Name: "Vegan", Slug: "vegan"},
	} {
		if err := s.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag: %v", err)
		}
	}

	// One unknown ID: it is simply absent from the result.
	got, err := s.GetTagsByIDs(ctx, []string{"tag-1", "tag-2", "tag-missing"})
	if err != nil {
		t.Fatalf("GetTagsByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d tags, want 2", len(got))
	}

	empty, err := s.GetTagsByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetTagsByIDs(nil): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d tags for empty input, want 0", len(empty))
	}
}

func TestGetTagNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetTag(context.Background(), "tag-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAndListIngredients(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ing := range []*domain.Ingredient{
		{ID: "ing-1", Name: "flour", MeasurementUnit: "g"},
		{ID: "ing-2", Name: "milk", MeasurementUnit: "ml"},
		{ID: "ing-3", Name: "flaked almonds", MeasurementUnit: "g"},
	} {
		if err := s.CreateIngredient(ctx, ing); err != nil {
			t.Fatalf("CreateIngredient(%s): %v", ing.ID, err)
		}
	}

	all, err := s.ListIngredients(ctx, "")
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d ingredients, want 3", len(all))
	}
	if all[0].Name != "flaked almonds" {
		t.Errorf("order: first is %q, want flaked almonds", all[0].Name)
	}
}

func TestListIngredientsPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, ing := range []*domain.Ingredient{
		{ID: "ing-1", Name: "Flour", MeasurementUnit: "g"},
		{ID: "ing-2", Name: "flaked almonds", MeasurementUnit: "g"},
		{ID: "ing-3", Name: "milk", MeasurementUnit: "ml"},
	} {
		if err := s.CreateIngredient(ctx, ing); err != nil {
			t.Fatalf("CreateIngredient: %v", err)
		}
	}

	// Prefix match is case-insensitive.
	got, err := s.ListIngredients(ctx, "fl")
	if err != nil {
		t.Fatalf("ListIngredients(fl): %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d ingredients, want 2", len(got))
	}

	// LIKE metacharacters are literal.
	none, err := s.ListIngredients(ctx, "%")
	if err != nil {
		t.Fatalf("ListIngredients(%%): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d ingredients for %%, want 0", len(none))
	}
}

func TestCreateIngredientDuplicatePair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateIngredient(ctx, &domain.Ingredient{ID: "ing-1", Name: "sugar", MeasurementUnit: "g"}); err != nil {
		t.Fatalf("CreateIngredient: %v", err)
	}

	// Same name, same unit: rejected.
	err := s.CreateIngredient(ctx, &domain.Ingredient{ID: "ing-2", Name: "sugar", MeasurementUnit: "g"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Same name, different unit: allowed.
	if err := s.CreateIngredient(ctx, &domain.Ingredient{ID: "ing-3", Name: "sugar", MeasurementUnit: "tbsp"}); err != nil {
		t.Errorf("same name different unit: %v", err)
	}
}
