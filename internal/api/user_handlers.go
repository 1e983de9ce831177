package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/savorly/savorly-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns a page of user profiles",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user profile by ID",
		Tags:        []string{"Users"},
	}, s.handleGetUser)
}

// === DTOs ===

// ProfileResponse is a user profile as seen by the requesting viewer.
type ProfileResponse struct {
	ID           string `json:"id" doc:"User ID"`
	Email        string `json:"email" doc:"User email"`
	Username     string `json:"username" doc:"Username"`
	FirstName    string `json:"first_name" doc:"First name"`
	LastName     string `json:"last_name" doc:"Last name"`
	IsSubscribed bool   `json:"is_subscribed" doc:"Whether the viewer follows this user"`
}

// ProfileOutput wraps a profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// ListUsersInput contains parameters for listing users.
type ListUsersInput struct {
	PageInput
}

// ListUsersResponse contains a page of user profiles.
type ListUsersResponse struct {
	Users []ProfileResponse `json:"users" doc:"User profiles"`
	Total int               `json:"total" doc:"Total user count"`
}

// ListUsersOutput wraps the list users response for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// GetUserInput contains parameters for getting a user.
type GetUserInput struct {
	ID string `path:"id" doc:"User ID"`
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	viewerID := OptionalUserID(ctx)
	limit, offset := s.pageWindow(input.Page, input.Limit)

	page, err := s.services.User.List(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}

	users := make([]ProfileResponse, len(page.Users))
	for i, profile := range page.Users {
		users[i] = mapProfileResponse(profile)
	}

	return &ListUsersOutput{Body: ListUsersResponse{Users: users, Total: page.Total}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.User.Get(ctx, userID, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*ProfileOutput, error) {
	viewerID := OptionalUserID(ctx)

	profile, err := s.services.User.Get(ctx, viewerID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapProfileResponse(profile)}, nil
}

// === Helpers ===

func mapProfileResponse(profile *service.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:           profile.ID,
		Email:        profile.Email,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		IsSubscribed: profile.IsSubscribed,
	}
}
