package domain

import "time"

// RelationKind distinguishes the two structurally identical user↔recipe
// relations. Both are uniqueness-constrained (user, recipe) rows; only the
// meaning differs.
type RelationKind string

const (
	// RelationFavorite marks a recipe as a user's favorite.
	RelationFavorite RelationKind = "favorite"
	// RelationCart marks a recipe as part of a user's shopping cart.
	RelationCart RelationKind = "shopping_cart"
)

// Valid reports whether k is a known relation kind.
func (k RelationKind) Valid() bool {
	return k == RelationFavorite || k == RelationCart
}

// Relation is a (user, recipe) join row of a given kind.
type Relation struct {
	UserID    string       `json:"user_id"`
	RecipeID  string       `json:"recipe_id"`
	Kind      RelationKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// Subscription is a follower→author relation between two users.
// Follower and author are always distinct.
type Subscription struct {
	FollowerID string    `json:"follower_id"`
	AuthorID   string    `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
}
