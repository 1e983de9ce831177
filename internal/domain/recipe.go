package domain

import "time"

// Recipe is the aggregate root: the recipe row plus its tag set and its
// quantified ingredient lines, persisted and updated as one unit.
type Recipe struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Name        string    `json:"name"`
	Text        string    `json:"text"`
	CookingTime int       `json:"cooking_time"` // Minutes, positive
	Image       string    `json:"image"`        // Opaque image reference (URL or data URI)
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owned associations. Loaded together with the recipe row.
	TagIDs      []string         `json:"tag_ids"`
	Ingredients []IngredientLine `json:"ingredients"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (r *Recipe) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp to the current time.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}

// IngredientLine is one quantified line item of a recipe.
// At most one line per (recipe, ingredient) pair.
type IngredientLine struct {
	IngredientID string `json:"ingredient_id"`
	Amount       int    `json:"amount"` // Positive
}

// RecipeFilter narrows recipe listings. Zero values mean "no constraint".
// FavoritedBy and InCartOf scope the listing to one user's relations;
// the service layer fills them from the authenticated viewer.
type RecipeFilter struct {
	TagSlugs       []string // OR within the set
	AuthorID       string
	FavoritedBy    string // User ID; only recipes favorited by this user
	InCartOf       string // User ID; only recipes in this user's cart
	Limit          int
	Offset         int
}

// ShoppingListItem is one aggregated line of a user's shopping list:
// total amount for an ingredient summed across every recipe in the cart.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}
