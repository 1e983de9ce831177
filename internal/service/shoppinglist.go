package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

// ShoppingListService aggregates the ingredients of every recipe in a
// user's cart into a downloadable text list.
type ShoppingListService struct {
	store  store.Store
	logger *slog.Logger
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(st store.Store, logger *slog.Logger) *ShoppingListService {
	return &ShoppingListService{store: st, logger: logger}
}

// Items returns the aggregated shopping list: one line per distinct
// (name, unit) pair with amounts summed across cart recipes, ordered by
// ingredient name. An empty cart yields an empty list.
func (s *ShoppingListService) Items(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	items, err := s.store.SumCartIngredients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("sum cart ingredients: %w", err)
	}
	return items, nil
}

// Render formats the aggregated list as plain text, one line per item.
func (s *ShoppingListService) Render(ctx context.Context, userID string) (string, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) — %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String(), nil
}
