package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/savorly/savorly-server/internal/service"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns a page of recipes, newest first, with optional tag, author, and viewer-relation filters",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create recipe",
		Description:   "Creates a recipe with its tag set and ingredient lines",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe by ID",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Replaces a recipe's content, tag set, and ingredient lines. Author only.",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}",
		Summary:       "Delete recipe",
		Description:   "Deletes a recipe and its associations. Author only.",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// RecipeIngredientRequest is one quantified ingredient in a recipe write.
type RecipeIngredientRequest struct {
	ID     string `json:"id" validate:"required" doc:"Ingredient ID"`
	Amount int    `json:"amount" validate:"required,gt=0" doc:"Amount in the ingredient's unit"`
}

// WriteRecipeRequest is the request body for create and update.
type WriteRecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=200" doc:"Recipe name"`
	Text        string                    `json:"text" validate:"required" doc:"Recipe description"`
	CookingTime int                       `json:"cooking_time" validate:"required,gte=1" doc:"Cooking time in minutes"`
	Image       string                    `json:"image,omitempty" doc:"Recipe image"`
	Tags        []string                  `json:"tags" validate:"required,min=1" doc:"Tag IDs"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive" doc:"Ingredient lines"`
}

// WriteRecipeInput wraps a recipe create request for Huma.
type WriteRecipeInput struct {
	Body WriteRecipeRequest
}

// UpdateRecipeInput wraps a recipe update request for Huma.
type UpdateRecipeInput struct {
	ID   string `path:"id" doc:"Recipe ID"`
	Body WriteRecipeRequest
}

// RecipeIngredientResponse is one resolved ingredient line.
type RecipeIngredientResponse struct {
	ID              string `json:"id" doc:"Ingredient ID"`
	Name            string `json:"name" doc:"Ingredient name"`
	MeasurementUnit string `json:"measurement_unit" doc:"Unit of measurement"`
	Amount          int    `json:"amount" doc:"Amount in this recipe"`
}

// RecipeResponse is the full recipe projection for the requesting viewer.
type RecipeResponse struct {
	ID               string                     `json:"id" doc:"Recipe ID"`
	Author           ProfileResponse            `json:"author" doc:"Recipe author"`
	Name             string                     `json:"name" doc:"Recipe name"`
	Text             string                     `json:"text" doc:"Recipe description"`
	CookingTime      int                        `json:"cooking_time" doc:"Cooking time in minutes"`
	Image            string                     `json:"image,omitempty" doc:"Recipe image"`
	Tags             []TagResponse              `json:"tags" doc:"Resolved tags"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients" doc:"Resolved ingredient lines"`
	IsFavorited      bool                       `json:"is_favorited" doc:"Whether the viewer favorited this recipe"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart" doc:"Whether this recipe is in the viewer's cart"`
	CreatedAt        time.Time                  `json:"created_at" doc:"Creation timestamp"`
}

// RecipeOutput wraps a recipe response for Huma.
type RecipeOutput struct {
	Body RecipeResponse
}

// ListRecipesInput contains parameters for listing recipes.
type ListRecipesInput struct {
	PageInput
	Tags             []string `query:"tags" doc:"Tag slugs; recipes matching any slug are included"`
	Author           string   `query:"author" doc:"Only recipes by this author ID"`
	IsFavorited      bool     `query:"is_favorited" doc:"Only recipes the viewer favorited (ignored for anonymous)"`
	IsInShoppingCart bool     `query:"is_in_shopping_cart" doc:"Only recipes in the viewer's cart (ignored for anonymous)"`
}

// ListRecipesResponse contains a page of recipes.
type ListRecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes" doc:"Recipe projections"`
	Total   int              `json:"total" doc:"Total matching recipes"`
}

// ListRecipesOutput wraps the listing for Huma.
type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// RecipeIDInput contains a recipe ID path parameter.
type RecipeIDInput struct {
	ID string `path:"id" doc:"Recipe ID"`
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error) {
	viewerID := OptionalUserID(ctx)
	limit, offset := s.pageWindow(input.Page, input.Limit)

	page, err := s.services.Recipe.List(ctx, viewerID, service.ListRecipesRequest{
		TagSlugs:         input.Tags,
		AuthorID:         input.Author,
		IsFavorited:      input.IsFavorited,
		IsInShoppingCart: input.IsInShoppingCart,
		Limit:            limit,
		Offset:           offset,
	})
	if err != nil {
		return nil, err
	}

	recipes := make([]RecipeResponse, len(page.Recipes))
	for i, view := range page.Recipes {
		recipes[i] = mapRecipeResponse(view)
	}

	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: recipes, Total: page.Total}}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *WriteRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Recipe.Create(ctx, userID, toWriteRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(view)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeIDInput) (*RecipeOutput, error) {
	viewerID := OptionalUserID(ctx)

	view, err := s.services.Recipe.Get(ctx, viewerID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(view)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Recipe.Update(ctx, userID, input.ID, toWriteRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipeResponse(view)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *RecipeIDInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipe.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return nil, nil
}

// === Helpers ===

func toWriteRequest(body WriteRecipeRequest) service.WriteRecipeRequest {
	ingredients := make([]service.IngredientLineRequest, len(body.Ingredients))
	for i, line := range body.Ingredients {
		ingredients[i] = service.IngredientLineRequest{ID: line.ID, Amount: line.Amount}
	}

	return service.WriteRecipeRequest{
		Name:        body.Name,
		Text:        body.Text,
		CookingTime: body.CookingTime,
		Image:       body.Image,
		TagIDs:      body.Tags,
		Ingredients: ingredients,
	}
}

func mapRecipeResponse(view *service.RecipeView) RecipeResponse {
	tags := make([]TagResponse, len(view.Tags))
	for i, t := range view.Tags {
		tags[i] = mapTagResponse(t)
	}

	ingredients := make([]RecipeIngredientResponse, len(view.Ingredients))
	for i, line := range view.Ingredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              line.ID,
			Name:            line.Name,
			MeasurementUnit: line.MeasurementUnit,
			Amount:          line.Amount,
		}
	}

	return RecipeResponse{
		ID:               view.ID,
		Author:           mapProfileResponse(view.Author),
		Name:             view.Name,
		Text:             view.Text,
		CookingTime:      view.CookingTime,
		Image:            view.Image,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      view.IsFavorited,
		IsInShoppingCart: view.IsInShoppingCart,
		CreatedAt:        view.CreatedAt,
	}
}
