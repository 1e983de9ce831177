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

// UserService serves user profiles as seen by a viewer.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: st, logger: logger}
}

// UserProfile is the public projection of a user. IsSubscribed is
// viewer-dependent: whether the requesting user follows this one.
// Anonymous viewers always see false.
type UserProfile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserPage is one page of user profiles.
type UserPage struct {
	Users []*UserProfile `json:"users"`
	Total int            `json:"total"`
}

// Get returns one user's profile as seen by viewerID (empty for
// anonymous).
func (s *UserService) Get(ctx context.Context, viewerID, userID string) (*UserProfile, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.Profile(ctx, viewerID, user)
}

// List returns a page of user profiles as seen by viewerID.
func (s *UserService) List(ctx context.Context, viewerID string, limit, offset int) (*UserPage, error) {
	users, total, err := s.store.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	profiles := make([]*UserProfile, 0, len(users))
	for _, user := range users {
		profile, err := s.Profile(ctx, viewerID, user)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return &UserPage{Users: profiles, Total: total}, nil
}

// Profile projects a domain user for the given viewer.
func (s *UserService) Profile(ctx context.Context, viewerID string, user *domain.User) (*UserProfile, error) {
	profile := &UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	// Self-view and anonymous both project as not subscribed.
	if viewerID != "" && viewerID != user.ID {
		subscribed, err := s.store.SubscriptionExists(ctx, viewerID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check subscription: %w", err)
		}
		profile.IsSubscribed = subscribed
	}

	return profile, nil
}
