package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/service"
)

func (s *Server) registerRelationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addFavorite",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes/{id}/favorite",
		Summary:       "Favorite recipe",
		Description:   "Adds a recipe to the authenticated user's favorites",
		Tags:          []string{"Favorites"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.relationAddHandler(domain.RelationFavorite))

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeFavorite",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}/favorite",
		Summary:       "Unfavorite recipe",
		Description:   "Removes a recipe from the authenticated user's favorites",
		Tags:          []string{"Favorites"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.relationRemoveHandler(domain.RelationFavorite))

	huma.Register(s.api, huma.Operation{
		OperationID:   "addToShoppingCart",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes/{id}/shopping_cart",
		Summary:       "Add recipe to cart",
		Description:   "Adds a recipe to the authenticated user's shopping cart",
		Tags:          []string{"Shopping cart"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.relationAddHandler(domain.RelationCart))

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeFromShoppingCart",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}/shopping_cart",
		Summary:       "Remove recipe from cart",
		Description:   "Removes a recipe from the authenticated user's shopping cart",
		Tags:          []string{"Shopping cart"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.relationRemoveHandler(domain.RelationCart))
}

// === DTOs ===

// RecipeSummaryOutput wraps the short recipe projection for Huma.
type RecipeSummaryOutput struct {
	Body RecipeSummaryResponse
}

// === Handlers ===

// relationAddHandler builds the add handler for one relation kind.
// Favorite and shopping cart share the code path; only the kind differs.
func (s *Server) relationAddHandler(kind domain.RelationKind) func(context.Context, *RecipeIDInput) (*RecipeSummaryOutput, error) {
	return func(ctx context.Context, input *RecipeIDInput) (*RecipeSummaryOutput, error) {
		userID, err := GetUserID(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := s.services.Relation.Add(ctx, kind, userID, input.ID)
		if err != nil {
			return nil, err
		}

		return &RecipeSummaryOutput{Body: mapRecipeSummary(summary)}, nil
	}
}

// relationRemoveHandler builds the remove handler for one relation kind.
func (s *Server) relationRemoveHandler(kind domain.RelationKind) func(context.Context, *RecipeIDInput) (*struct{}, error) {
	return func(ctx context.Context, input *RecipeIDInput) (*struct{}, error) {
		userID, err := GetUserID(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.services.Relation.Remove(ctx, kind, userID, input.ID); err != nil {
			return nil, err
		}

		return nil, nil
	}
}

// === Helpers ===

func mapRecipeSummary(summary *service.RecipeSummary) RecipeSummaryResponse {
	return RecipeSummaryResponse{
		ID:          summary.ID,
		Name:        summary.Name,
		Image:       summary.Image,
		CookingTime: summary.CookingTime,
	}
}
