package store

import (
	"context"

	"github.com/savorly/savorly-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int, error)

	// Auth sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteAllUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Tag catalog
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// Ingredient catalog
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	GetIngredientsByIDs(ctx context.Context, ids []string) ([]*domain.Ingredient, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]*domain.Ingredient, error)

	// Recipes. Create and Update persist the whole aggregate (recipe row,
	// tag set, ingredient lines) in a single transaction.
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, int, error)
	ListRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Recipe, error)
	CountRecipesByAuthor(ctx context.Context, authorID string) (int, error)

	// Favorite / shopping-cart relations
	AddRelation(ctx context.Context, kind domain.RelationKind, userID, recipeID string) error
	RemoveRelation(ctx context.Context, kind domain.RelationKind, userID, recipeID string) error
	RelationExists(ctx context.Context, kind domain.RelationKind, userID, recipeID string) (bool, error)
	RelationSet(ctx context.Context, kind domain.RelationKind, userID string, recipeIDs []string) (map[string]bool, error)

	// Shopping list
	SumCartIngredients(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, sub *domain.Subscription) error
	DeleteSubscription(ctx context.Context, followerID, authorID string) error
	SubscriptionExists(ctx context.Context, followerID, authorID string) (bool, error)
	ListSubscriptions(ctx context.Context, followerID string, limit, offset int) ([]*domain.Subscription, int, error)
}
