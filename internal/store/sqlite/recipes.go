package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/store"
)

const recipeColumns = `id, author_id, name, text, cooking_time, image, created_at, updated_at`

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var createdAt, updatedAt string

	err := scanner.Scan(
		&r.ID,
		&r.AuthorID,
		&r.Name,
		&r.Text,
		&r.CookingTime,
		&r.Image,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a recipe together with its tag and ingredient
// associations in one transaction.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, author_id, name, text, cooking_time, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID,
		recipe.AuthorID,
		recipe.Name,
		recipe.Text,
		recipe.CookingTime,
		recipe.Image,
		formatTime(recipe.CreatedAt),
		formatTime(recipe.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := insertRecipeAssociations(ctx, tx, recipe); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateRecipe replaces a recipe's fields and rewrites both association
// sets in one transaction.
// Returns store.ErrNotFound if the recipe does not exist.
func (s *Store) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE recipes
		SET name = ?, text = ?, cooking_time = ?, image = ?, updated_at = ?
		WHERE id = ?`,
		recipe.Name,
		recipe.Text,
		recipe.CookingTime,
		recipe.Image,
		formatTime(recipe.UpdatedAt),
		recipe.ID,
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, recipe.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
		return err
	}

	if err := insertRecipeAssociations(ctx, tx, recipe); err != nil {
		return err
	}

	return tx.Commit()
}

func insertRecipeAssociations(ctx context.Context, tx *sql.Tx, recipe *domain.Recipe) error {
	for _, tagID := range recipe.TagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`,
			recipe.ID, tagID); err != nil {
			return err
		}
	}
	for _, line := range recipe.Ingredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, ?)`,
			recipe.ID, line.IngredientID, line.Amount); err != nil {
			return err
		}
	}
	return nil
}

// DeleteRecipe removes a recipe. Associations, relations and cart rows go
// with it via ON DELETE CASCADE.
// Returns store.ErrNotFound if the recipe does not exist.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
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

// GetRecipe retrieves a recipe with its tag IDs and ingredient lines.
// Returns store.ErrNotFound if the recipe does not exist.
func (s *Store) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeAssociations(ctx, []*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns a page of recipes matching the filter, newest first,
// plus the total count of matching recipes.
func (s *Store) ListRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, int, error) {
	where, args := buildRecipeFilter(filter)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + prefixColumns("r", recipeColumns) + ` FROM recipes r` + where +
		` ORDER BY r.created_at DESC, r.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := s.loadRecipeAssociations(ctx, recipes); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func buildRecipeFilter(filter domain.RecipeFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.AuthorID != "" {
		conds = append(conds, `r.author_id = ?`)
		args = append(args, filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM recipe_tags rt
			JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug IN (`+placeholders(len(filter.TagSlugs))+`))`)
		for _, slug := range filter.TagSlugs {
			args = append(args, slug)
		}
	}
	if filter.FavoritedBy != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM user_recipe_relations rel
			WHERE rel.recipe_id = r.id AND rel.user_id = ? AND rel.kind = ?)`)
		args = append(args, filter.FavoritedBy, string(domain.RelationFavorite))
	}
	if filter.InCartOf != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM user_recipe_relations rel
			WHERE rel.recipe_id = r.id AND rel.user_id = ? AND rel.kind = ?)`)
		args = append(args, filter.InCartOf, string(domain.RelationCart))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListRecipesByAuthor returns an author's newest recipes, capped at limit.
// A limit of zero or less means no cap.
func (s *Store) ListRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE author_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{authorID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadRecipeAssociations(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountRecipesByAuthor returns how many recipes an author has published.
func (s *Store) CountRecipesByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes WHERE author_id = ?`, authorID).Scan(&count)
	return count, err
}

func collectRecipes(rows *sql.Rows) ([]*domain.Recipe, error) {
	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recipes, nil
}

// loadRecipeAssociations fills TagIDs and Ingredients for the given
// recipes with two batched queries.
func (s *Store) loadRecipeAssociations(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Recipe, len(recipes))
	args := make([]any, len(recipes))
	for i, r := range recipes {
		byID[r.ID] = r
		args[i] = r.ID
	}
	marks := placeholders(len(recipes))

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, rt.tag_id
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (`+marks+`)
		ORDER BY t.name ASC`, args...)
	if err != nil {
		return err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var recipeID, tagID string
		if err := tagRows.Scan(&recipeID, &tagID); err != nil {
			return err
		}
		if r, ok := byID[recipeID]; ok {
			r.TagIDs = append(r.TagIDs, tagID)
		}
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	ingRows, err := s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, ri.ingredient_id, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (`+marks+`)
		ORDER BY i.name ASC`, args...)
	if err != nil {
		return err
	}
	defer ingRows.Close()

	for ingRows.Next() {
		var (
			recipeID string
			line     domain.IngredientLine
		)
		if err := ingRows.Scan(&recipeID, &line.IngredientID, &line.Amount); err != nil {
			return err
		}
		if r, ok := byID[recipeID]; ok {
			r.Ingredients = append(r.Ingredients, line)
		}
	}
	return ingRows.Err()
}

// prefixColumns qualifies each column in a comma-separated list with an
// alias, for queries that join other tables.
func prefixColumns(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
