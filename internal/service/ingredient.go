package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/savorly/savorly-server/internal/domain"
	domainerrors "github.com/savorly/savorly-server/internal/errors"
	"github.com/savorly/savorly-server/internal/id"
	"github.com/savorly/savorly-server/internal/store"
)

// IngredientService serves the read-only ingredient catalog.
type IngredientService struct {
	store  store.Store
	logger *slog.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(st store.Store, logger *slog.Logger) *IngredientService {
	return &IngredientService{store: st, logger: logger}
}

// CreateIngredientRequest contains the fields of a new catalog ingredient.
type CreateIngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

// List returns ingredients, optionally restricted to a case-insensitive
// name prefix for autocomplete.
func (s *IngredientService) List(ctx context.Context, namePrefix string) ([]*domain.Ingredient, error) {
	ingredients, err := s.store.ListIngredients(ctx, namePrefix)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// Get returns one ingredient by ID.
func (s *IngredientService) Get(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	ing, err := s.store.GetIngredient(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("ingredient not found")
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// Create adds an ingredient to the catalog. Used by the seeding tool.
func (s *IngredientService) Create(ctx context.Context, req CreateIngredientRequest) (*domain.Ingredient, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	ingredientID, err := id.Generate("ing")
	if err != nil {
		return nil, fmt.Errorf("generate ingredient ID: %w", err)
	}

	ing := &domain.Ingredient{
		ID:              ingredientID,
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}
	if err := s.store.CreateIngredient(ctx, ing); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("ingredient already in catalog")
		}
		return nil, fmt.Errorf("create ingredient: %w", err)
	}

	return ing, nil
}
