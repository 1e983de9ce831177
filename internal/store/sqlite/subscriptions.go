package sqlite

import (
	"context"
	"database/sql"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

// CreateSubscription records follower following author.
// Returns store.ErrAlreadyExists if the subscription is already present
// and store.ErrInvalidInput if follower and author are the same user.
func (s *Store) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (follower_id, author_id, created_at)
		VALUES (?, ?, ?)`,
		sub.FollowerID, sub.AuthorID, formatTime(sub.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		if isCheckViolation(err) {
			return store.ErrInvalidInput
		}
		return err
	}
	return nil
}

// DeleteSubscription removes the (follower, author) subscription.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteSubscription(ctx context.Context, followerID, authorID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM subscriptions WHERE follower_id = ? AND author_id = ?`,
		followerID, authorID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SubscriptionExists reports whether follower follows author.
func (s *Store) SubscriptionExists(ctx context.Context, followerID, authorID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM subscriptions WHERE follower_id = ? AND author_id = ?`,
		followerID, authorID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListSubscriptions returns a page of the follower's subscriptions,
// newest first, plus the total count.
func (s *Store) ListSubscriptions(ctx context.Context, followerID string, limit, offset int) ([]*domain.Subscription, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE follower_id = ?`, followerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT follower_id, author_id, created_at
		FROM subscriptions
		WHERE follower_id = ?
		ORDER BY created_at DESC, author_id ASC
		LIMIT ? OFFSET ?`,
		followerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subs []*domain.Subscription
	for rows.Next() {
		var (
			sub       domain.Subscription
			createdAt string
		)
		if err := rows.Scan(&sub.FollowerID, &sub.AuthorID, &createdAt); err != nil {
			return nil, 0, err
		}
		sub.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
