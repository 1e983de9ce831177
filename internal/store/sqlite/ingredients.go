package sqlite

import (
	"context"
	"database/sql"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

const ingredientColumns = `id, name, measurement_unit`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := scanner.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// CreateIngredient inserts a new ingredient.
// Returns store.ErrAlreadyExists on a duplicate (name, unit) pair.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, measurement_unit)
		VALUES (?, ?, ?)`,
		ing.ID, ing.Name, ing.MeasurementUnit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetIngredient retrieves an ingredient by ID.
// Returns store.ErrNotFound if the ingredient does not exist.
func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, id)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredientsByIDs returns the ingredients matching the given IDs.
// Missing IDs are absent from the result.
func (s *Store) GetIngredientsByIDs(ctx context.Context, ids []string) ([]*domain.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id IN (`+placeholders(len(ids))+`) ORDER BY name ASC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIngredients(rows)
}

// ListIngredients returns ingredients ordered by name, optionally
// restricted to names starting with namePrefix (case-insensitive).
func (s *Store) ListIngredients(ctx context.Context, namePrefix string) ([]*domain.Ingredient, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if namePrefix == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+ingredientColumns+` FROM ingredients ORDER BY name ASC`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+ingredientColumns+` FROM ingredients
			WHERE name LIKE ? ESCAPE '\' COLLATE NOCASE
			ORDER BY name ASC`,
			escapeLike(namePrefix)+"%")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectIngredients(rows)
}

func collectIngredients(rows *sql.Rows) ([]*domain.Ingredient, error) {
	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ingredients, nil
}
