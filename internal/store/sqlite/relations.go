package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

// AddRelation records a user-recipe relation of the given kind.
// Returns store.ErrAlreadyExists if the relation is already present.
func (s *Store) AddRelation(ctx context.Context, kind domain.RelationKind, userID, recipeID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_recipe_relations (user_id, recipe_id, kind, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, recipeID, string(kind), formatTime(time.Now().UTC()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// RemoveRelation deletes a user-recipe relation of the given kind.
// Returns store.ErrNotFound if no such relation exists.
func (s *Store) RemoveRelation(ctx context.Context, kind domain.RelationKind, userID, recipeID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_recipe_relations
		WHERE user_id = ? AND recipe_id = ? AND kind = ?`,
		userID, recipeID, string(kind),
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

// RelationExists reports whether a relation of the given kind exists.
func (s *Store) RelationExists(ctx context.Context, kind domain.RelationKind, userID, recipeID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM user_recipe_relations
		WHERE user_id = ? AND recipe_id = ? AND kind = ?`,
		userID, recipeID, string(kind),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RelationSet returns which of the given recipe IDs the user has a
// relation of the given kind with. Recipes without a relation map to
// false.
func (s *Store) RelationSet(ctx context.Context, kind domain.RelationKind, userID string, recipeIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		result[id] = false
	}
	if userID == "" || len(recipeIDs) == 0 {
		return result, nil
	}

	args := make([]any, 0, len(recipeIDs)+2)
	args = append(args, userID, string(kind))
	for _, id := range recipeIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT recipe_id FROM user_recipe_relations
		WHERE user_id = ? AND kind = ? AND recipe_id IN (`+placeholders(len(recipeIDs))+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID string
		if err := rows.Scan(&recipeID); err != nil {
			return nil, err
		}
		result[recipeID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
