package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

func makeSubscription(followerID, authorID string) *domain.Subscription {
	return &domain.Subscription{
		FollowerID: followerID,
		AuthorID:   authorID,
		CreatedAt:  time.Now(),
	}
}

func TestCreateSubscriptionDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-follower")
	mustCreateUser(t, s, "user-author")

	if err := s.CreateSubscription(ctx, makeSubscription("user-follower", "user-author")); err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}
	err := s.CreateSubscription(ctx, makeSubscription("user-follower", "user-author"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateSubscriptionSelf(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-solo")

	// The CHECK constraint is the last line of defense below the service.
	err := s.CreateSubscription(ctx, makeSubscription("user-solo", "user-solo"))
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubscriptionDirectional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-a")
	mustCreateUser(t, s, "user-b")

	if err := s.CreateSubscription(ctx, makeSubscription("user-a", "user-b")); err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}

	forward, err := s.SubscriptionExists(ctx, "user-a", "user-b")
	if err != nil {
		t.Fatalf("SubscriptionExists: %v", err)
	}
	if !forward {
		t.Error("expected a→b subscription to exist")
	}

	reverse, err := s.SubscriptionExists(ctx, "user-b", "user-a")
	if err != nil {
		t.Fatalf("SubscriptionExists reverse: %v", err)
	}
	if reverse {
		t.Error("b→a must not exist; subscriptions are directional")
	}

	// Deleting the reverse direction is a miss.
	if err := s.DeleteSubscription(ctx, "user-b", "user-a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteSubscription(ctx, "user-a", "user-b"); err != nil {
		t.Fatalf("DeleteSubscription: %v", err)
	}
}

func TestListSubscriptionsPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-follower")
	for _, author := range []string{"user-a", "user-b", "user-c"} {
		mustCreateUser(t, s, author)
		if err := s.CreateSubscription(ctx, makeSubscription("user-follower", author)); err != nil {
			t.Fatalf("CreateSubscription(%s): %v", author, err)
		}
	}

	subs, total, err := s.ListSubscriptions(ctx, "user-follower", 2, 0)
	if err != nil {
		t.Fatalf("ListSubscriptions: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(subs) != 2 {
		t.Errorf("page: got %d, want 2", len(subs))
	}

	// A different user has no subscriptions.
	none, total, err := s.ListSubscriptions(ctx, "user-a", 10, 0)
	if err != nil {
		t.Fatalf("ListSubscriptions(user-a): %v", err)
	}
	if total != 0 || len(none) != 0 {
		t.Errorf("expected empty list, got %d (total %d)", len(none), total)
	}
}
