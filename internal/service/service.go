// Package service implements the application's business logic on top of
// the store, keeping HTTP concerns out.
package service

import (
	"log/slog"

	"github.com/savorly/savorly-server/internal/auth"
	"github.com/savorly/savorly-server/internal/config"
	"github.com/savorly/savorly-server/internal/search"
	"github.com/savorly/savorly-server/internal/store"
	"github.com/savorly/savorly-server/internal/validation"
)

// validate is the shared request validator for all services.
var validate = validation.New()

// Services bundles every service for dependency injection.
type Services struct {
	Auth         *AuthService
	User         *UserService
	Tag          *TagService
	Ingredient   *IngredientService
	Recipe       *RecipeService
	Relation     *RelationService
	ShoppingList *ShoppingListService
	Subscription *SubscriptionService
	Search       *SearchService
}

// New wires up all services against the given dependencies.
func New(
	st store.Store,
	tokenService *auth.TokenService,
	index *search.Index,
	cfg *config.Config,
	logger *slog.Logger,
) *Services {
	userService := NewUserService(st, logger)
	searchService := NewSearchService(st, index, logger)
	recipeService := NewRecipeService(st, searchService, logger)
	subscriptionService := NewSubscriptionService(st, cfg, logger)

	return &Services{
		Auth:         NewAuthService(st, tokenService, logger),
		User:         userService,
		Tag:          NewTagService(st, logger),
		Ingredient:   NewIngredientService(st, logger),
		Recipe:       recipeService,
		Relation:     NewRelationService(st, logger),
		ShoppingList: NewShoppingListService(st, logger),
		Subscription: subscriptionService,
		Search:       searchService,
	}
}
