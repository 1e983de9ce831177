package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

func TestAddRelationDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateRecipe(t, s, "rcp-1", "user-author")
	mustCreateUser(t, s, "user-fan")

	if err := s.AddRelation(ctx, domain.RelationFavorite, "user-fan", "rcp-1"); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	err := s.AddRelation(ctx, domain.RelationFavorite, "user-fan", "rcp-1")
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRelationKindsIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateRecipe(t, s, "rcp-1", "user-author")
	mustCreateUser(t, s, "user-fan")

	// Same (user, recipe) pair may hold both kinds.
	if err := s.AddRelation(ctx, domain.RelationFavorite, "user-fan", "rcp-1"); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if err := s.AddRelation(ctx, domain.RelationCart, "user-fan", "rcp-1"); err != nil {
		t.Fatalf("cart: %v", err)
	}

	// Removing one leaves the other.
	if err := s.RemoveRelation(ctx, domain.RelationFavorite, "user-fan", "rcp-1"); err != nil {
		t.Fatalf("RemoveRelation: %v", err)
	}
	inCart, err := s.RelationExists(ctx, domain.RelationCart, "user-fan", "rcp-1")
	if err != nil {
		t.Fatalf("RelationExists: %v", err)
	}
	if !inCart {
		t.Error("cart relation removed along with favorite")
	}
}

func TestRemoveRelationNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateRecipe(t, s, "rcp-1", "user-author")
	mustCreateUser(t, s, "user-fan")

	err := s.RemoveRelation(ctx, domain.RelationCart, "user-fan", "rcp-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRelationSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateRecipe(t, s, "rcp-1", "user-author")
	mustCreateRecipe(t, s, "rcp-2", "user-author")
	mustCreateUser(t, s, "user-fan")

	if err := s.AddRelation(ctx, domain.RelationFavorite, "user-fan", "rcp-1"); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	set, err := s.RelationSet(ctx, domain.RelationFavorite, "user-fan", []string{"rcp-1", "rcp-2"})
	if err != nil {
		t.Fatalf("RelationSet: %v", err)
	}
	if !set["rcp-1"] {
		t.Error("rcp-1 should be favorited")
	}
	if set["rcp-2"] {
		t.Error("rcp-2 should not be favorited")
	}

	// Anonymous viewer: everything false.
	anon, err := s.RelationSet(ctx, domain.RelationFavorite, "", []string{"rcp-1"})
	if err != nil {
		t.Fatalf("RelationSet anonymous: %v", err)
	}
	if anon["rcp-1"] {
		t.Error("anonymous viewer should see no favorites")
	}
}
