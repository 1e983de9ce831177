package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/savorly/savorly-server/internal/service"
)

func (s *Server) registerSubscriptionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSubscriptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/subscriptions",
		Summary:     "List subscriptions",
		Description: "Returns the authors the authenticated user follows, each with a recipe preview",
		Tags:        []string{"Subscriptions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSubscriptions)

	huma.Register(s.api, huma.Operation{
		OperationID:   "subscribe",
		Method:        http.MethodPost,
		Path:          "/api/v1/users/{id}/subscribe",
		Summary:       "Subscribe to author",
		Description:   "Makes the authenticated user follow the given author",
		Tags:          []string{"Subscriptions"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleSubscribe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "unsubscribe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/users/{id}/subscribe",
		Summary:       "Unsubscribe from author",
		Description:   "Stops following the given author",
		Tags:          []string{"Subscriptions"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleUnsubscribe)
}

// === DTOs ===

// RecipeSummaryResponse is the short recipe projection embedded in
// subscription and relation responses.
type RecipeSummaryResponse struct {
	ID          string `json:"id" doc:"Recipe ID"`
	Name        string `json:"name" doc:"Recipe name"`
	Image       string `json:"image,omitempty" doc:"Recipe image"`
	CookingTime int    `json:"cooking_time" doc:"Cooking time in minutes"`
}

// SubscriptionResponse is one followed author with a recipe preview.
type SubscriptionResponse struct {
	ID           string                  `json:"id" doc:"Author ID"`
	Email        string                  `json:"email" doc:"Author email"`
	Username     string                  `json:"username" doc:"Author username"`
	FirstName    string                  `json:"first_name" doc:"Author first name"`
	LastName     string                  `json:"last_name" doc:"Author last name"`
	IsSubscribed bool                    `json:"is_subscribed" doc:"Always true in this listing"`
	Recipes      []RecipeSummaryResponse `json:"recipes" doc:"Newest recipes, capped by recipes_limit"`
	RecipesCount int                     `json:"recipes_count" doc:"Total recipes by this author"`
}

// SubscriptionOutput wraps a subscription response for Huma.
type SubscriptionOutput struct {
	Body SubscriptionResponse
}

// ListSubscriptionsInput contains parameters for listing subscriptions.
type ListSubscriptionsInput struct {
	PageInput
	RecipesLimit int `query:"recipes_limit" minimum:"1" doc:"Max recipes embedded per author"`
}

// ListSubscriptionsResponse contains a page of followed authors.
type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions" doc:"Followed authors"`
	Total         int                    `json:"total" doc:"Total followed authors"`
}

// ListSubscriptionsOutput wraps the listing for Huma.
type ListSubscriptionsOutput struct {
	Body ListSubscriptionsResponse
}

// SubscribeInput contains parameters for subscribe/unsubscribe.
type SubscribeInput struct {
	ID string `path:"id" doc:"Author ID"`
}

// === Handlers ===

func (s *Server) handleListSubscriptions(ctx context.Context, input *ListSubscriptionsInput) (*ListSubscriptionsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	limit, offset := s.pageWindow(input.Page, input.Limit)

	page, err := s.services.Subscription.ListFollowing(ctx, userID, limit, offset, input.RecipesLimit)
	if err != nil {
		return nil, err
	}

	subs := make([]SubscriptionResponse, len(page.Subscriptions))
	for i, view := range page.Subscriptions {
		subs[i] = mapSubscriptionResponse(view)
	}

	return &ListSubscriptionsOutput{
		Body: ListSubscriptionsResponse{Subscriptions: subs, Total: page.Total},
	}, nil
}

func (s *Server) handleSubscribe(ctx context.Context, input *SubscribeInput) (*SubscriptionOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Subscription.Subscribe(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &SubscriptionOutput{Body: mapSubscriptionResponse(view)}, nil
}

func (s *Server) handleUnsubscribe(ctx context.Context, input *SubscribeInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Subscription.Unsubscribe(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return nil, nil
}

// === Helpers ===

func mapSubscriptionResponse(view *service.SubscriptionView) SubscriptionResponse {
	recipes := make([]RecipeSummaryResponse, len(view.Recipes))
	for i, r := range view.Recipes {
		recipes[i] = RecipeSummaryResponse{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		}
	}

	return SubscriptionResponse{
		ID:           view.ID,
		Email:        view.Email,
		Username:     view.Username,
		FirstName:    view.FirstName,
		LastName:     view.LastName,
		IsSubscribed: view.IsSubscribed,
		Recipes:      recipes,
		RecipesCount: view.RecipesCount,
	}
}
