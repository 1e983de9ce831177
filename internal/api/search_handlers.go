package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/savorly/savorly-server/internal/errors"
	"github.com/savorly/savorly-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/search",
		Summary:     "Search recipes",
		Description: "Full-text search over recipe names, descriptions, ingredients, and authors",
		Tags:        []string{"Recipes"},
	}, s.handleSearchRecipes)
}

// === DTOs ===

// SearchRecipesInput contains full-text search parameters.
type SearchRecipesInput struct {
	PageInput
	Query          string   `query:"q" doc:"Search query"`
	Tags           []string `query:"tags" doc:"Tag slugs to filter by"`
	MaxCookingTime int      `query:"max_cooking_time" minimum:"0" doc:"Maximum cooking time in minutes"`
	SortBy         string   `query:"sort_by" enum:"relevance,name,recent,cooking_time" default:"relevance" doc:"Sort field"`
	SortOrder      string   `query:"sort_order" enum:"asc,desc" default:"desc" doc:"Sort direction"`
}

// SearchRecipesResponse contains ranked recipe projections.
type SearchRecipesResponse struct {
	Query   string           `json:"query" doc:"Echoed search query"`
	Total   uint64           `json:"total" doc:"Total matching recipes"`
	TookMs  int64            `json:"took_ms" doc:"Search duration in milliseconds"`
	Recipes []RecipeResponse `json:"recipes" doc:"Matching recipes in rank order"`
}

// SearchRecipesOutput wraps the search response for Huma.
type SearchRecipesOutput struct {
	Body SearchRecipesResponse
}

// === Handlers ===

func (s *Server) handleSearchRecipes(ctx context.Context, input *SearchRecipesInput) (*SearchRecipesOutput, error) {
	viewerID := OptionalUserID(ctx)
	limit, offset := s.pageWindow(input.Page, input.Limit)

	params := search.DefaultParams()
	params.Query = input.Query
	params.TagSlugs = input.Tags
	params.MaxCookingTime = input.MaxCookingTime
	params.Limit = limit
	params.Offset = offset
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	// Hits are resolved against the store so the response carries full
	// viewer-dependent projections. A hit missing from the store is index
	// drift; skip it rather than fail the search.
	recipes := make([]RecipeResponse, 0, len(result.Hits))
	for _, hit := range result.Hits {
		view, err := s.services.Recipe.Get(ctx, viewerID, hit.ID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				s.logger.Warn("search hit missing from store", "recipe_id", hit.ID)
				continue
			}
			return nil, err
		}
		recipes = append(recipes, mapRecipeResponse(view))
	}

	return &SearchRecipesOutput{
		Body: SearchRecipesResponse{
			Query:   result.Query,
			Total:   result.Total,
			TookMs:  result.TookMs,
			Recipes: recipes,
		},
	}, nil
}
