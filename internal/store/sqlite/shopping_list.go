package sqlite

import (
	"context"

	"github.com/savorly/savorly-server/internal/domain"
)

// SumCartIngredients aggregates the ingredients of every recipe in the
// user's shopping cart, summing amounts per (name, unit) pair, ordered
// by ingredient name.
func (s *Store) SumCartIngredients(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.name, i.measurement_unit, SUM(ri.amount)
		FROM user_recipe_relations rel
		JOIN recipe_ingredients ri ON ri.recipe_id = rel.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE rel.user_id = ? AND rel.kind = ?
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name ASC, i.measurement_unit ASC`,
		userID, string(domain.RelationCart))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ShoppingListItem
	for rows.Next() {
		var item domain.ShoppingListItem
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
