package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/savorly/savorly-server/internal/domain"
	domainerrors "github.com/savorly/savorly-server/internal/errors"
	"github.com/savorly/savorly-server/internal/store"
)

// RelationService manages the favorite and shopping-cart relations.
// Both kinds share one code path; only the kind value differs.
type RelationService struct {
	store  store.Store
	logger *slog.Logger
}

// NewRelationService creates a new relation service.
func NewRelationService(st store.Store, logger *slog.Logger) *RelationService {
	return &RelationService{store: st, logger: logger}
}

// RecipeSummary is the short recipe projection returned when a relation
// is added.
type RecipeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// Add records a relation of the given kind between user and recipe.
// Duplicates are rejected as a conflict; the store's uniqueness
// constraint closes the race with concurrent adds.
func (s *RelationService) Add(ctx context.Context, kind domain.RelationKind, userID, recipeID string) (*RecipeSummary, error) {
	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown relation kind %q", kind)
	}

	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if err := s.store.AddRelation(ctx, kind, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("recipe already in %s", kindLabel(kind))
		}
		return nil, fmt.Errorf("add relation: %w", err)
	}

	s.logger.Info("relation added",
		"kind", string(kind),
		"user_id", userID,
		"recipe_id", recipeID,
	)

	return &RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}, nil
}

// Remove deletes a relation of the given kind. Removing a relation that
// does not exist is a not-found error.
func (s *RelationService) Remove(ctx context.Context, kind domain.RelationKind, userID, recipeID string) error {
	if !kind.Valid() {
		return domainerrors.Validationf("unknown relation kind %q", kind)
	}

	if _, err := s.store.GetRecipe(ctx, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("recipe not found")
		}
		return fmt.Errorf("get recipe: %w", err)
	}

	if err := s.store.RemoveRelation(ctx, kind, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("recipe not in %s", kindLabel(kind))
		}
		return fmt.Errorf("remove relation: %w", err)
	}

	s.logger.Info("relation removed",
		"kind", string(kind),
		"user_id", userID,
		"recipe_id", recipeID,
	)
	return nil
}

func kindLabel(kind domain.RelationKind) string {
	if kind == domain.RelationCart {
		return "shopping cart"
	}
	return "favorites"
}
