package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/savorly/savorly-server/internal/config"
	"github.com/savorly/savorly-server/internal/domain"
	domainerrors "github.com/savorly/savorly-server/internal/errors"
	"github.com/savorly/savorly-server/internal/store"
)

// SubscriptionService manages follower→author relations and the
// "authors I follow" listing with embedded recipes.
type SubscriptionService struct {
	store  store.Store
	cfg    *config.Config
	logger *slog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(st store.Store, cfg *config.Config, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{store: st, cfg: cfg, logger: logger}
}

// SubscriptionView is one followed author with a capped preview of
// their newest recipes and their total recipe count.
type SubscriptionView struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	IsSubscribed bool             `json:"is_subscribed"` // Always true here
	Recipes      []*RecipeSummary `json:"recipes"`
	RecipesCount int              `json:"recipes_count"`
}

// SubscriptionPage is one page of followed authors.
type SubscriptionPage struct {
	Subscriptions []*SubscriptionView `json:"subscriptions"`
	Total         int                 `json:"total"`
}

// Subscribe makes followerID follow authorID.
// Self-follows and duplicates are rejected.
func (s *SubscriptionService) Subscribe(ctx context.Context, followerID, authorID string) (*SubscriptionView, error) {
	if followerID == authorID {
		return nil, domainerrors.SelfFollow("cannot subscribe to yourself")
	}

	author, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	sub := &domain.Subscription{
		FollowerID: followerID,
		AuthorID:   authorID,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.Conflict("already subscribed to this user")
		case errors.Is(err, store.ErrInvalidInput):
			return nil, domainerrors.SelfFollow("cannot subscribe to yourself")
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	s.logger.Info("subscription created",
		"follower_id", followerID,
		"author_id", authorID,
	)

	return s.buildView(ctx, author, s.cfg.API.DefaultRecipesLimit)
}

// Unsubscribe removes the follower→author relation. Unsubscribing from
// someone not followed is a not-found error.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, followerID, authorID string) error {
	if _, err := s.store.GetUser(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get author: %w", err)
	}

	if err := s.store.DeleteSubscription(ctx, followerID, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("not subscribed to this user")
		}
		return fmt.Errorf("delete subscription: %w", err)
	}

	s.logger.Info("subscription removed",
		"follower_id", followerID,
		"author_id", authorID,
	)
	return nil
}

// ListFollowing returns a page of the authors followerID follows, each
// with up to recipesLimit of their newest recipes (0 uses the
// configured default).
func (s *SubscriptionService) ListFollowing(ctx context.Context, followerID string, limit, offset, recipesLimit int) (*SubscriptionPage, error) {
	if recipesLimit <= 0 {
		recipesLimit = s.cfg.API.DefaultRecipesLimit
	}

	subs, total, err := s.store.ListSubscriptions(ctx, followerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	views := make([]*SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		author, err := s.store.GetUser(ctx, sub.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("get author %s: %w", sub.AuthorID, err)
		}
		view, err := s.buildView(ctx, author, recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return &SubscriptionPage{Subscriptions: views, Total: total}, nil
}

func (s *SubscriptionService) buildView(ctx context.Context, author *domain.User, recipesLimit int) (*SubscriptionView, error) {
	recipes, err := s.store.ListRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}
	count, err := s.store.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("count author recipes: %w", err)
	}

	summaries := make([]*RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, &RecipeSummary{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		})
	}

	return &SubscriptionView{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}
