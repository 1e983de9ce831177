package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/savorly/savorly-server/internal/domain"
	domainerrors "github.com/savorly/savorly-server/internal/errors"
	"github.com/savorly/savorly-server/internal/id"
	"github.com/savorly/savorly-server/internal/store"
)

// RecipeService owns the recipe aggregate: writes go through full
// validation and a single transaction; reads produce viewer-dependent
// projections.
type RecipeService struct {
	store  store.Store
	search *SearchService
	logger *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(st store.Store, search *SearchService, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:  st,
		search: search,
		logger: logger,
	}
}

// IngredientLineRequest is one quantified ingredient in a write request.
type IngredientLineRequest struct {
	ID     string `json:"id" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

// WriteRecipeRequest is the payload for both create and full update.
type WriteRecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int                     `json:"cooking_time" validate:"required,gte=1"`
	Image       string                  `json:"image"`
	TagIDs      []string                `json:"tags" validate:"required,min=1"`
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,dive"`
}

// IngredientView is one resolved ingredient line in a recipe projection.
type IngredientView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full viewer-dependent recipe projection.
type RecipeView struct {
	ID               string           `json:"id"`
	Author           *UserProfile     `json:"author"`
	Name             string           `json:"name"`
	Text             string           `json:"text"`
	CookingTime      int              `json:"cooking_time"`
	Image            string           `json:"image"`
	Tags             []*domain.Tag    `json:"tags"`
	Ingredients      []IngredientView `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	CreatedAt        time.Time        `json:"created_at"`
}

// RecipePage is one page of recipe projections.
type RecipePage struct {
	Recipes []*RecipeView `json:"recipes"`
	Total   int           `json:"total"`
}

// ListRecipesRequest narrows and pages a recipe listing.
type ListRecipesRequest struct {
	TagSlugs         []string
	AuthorID         string
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
	Offset           int
}

// Create validates and persists a new recipe aggregate for authorID.
func (s *RecipeService) Create(ctx context.Context, authorID string, req WriteRecipeRequest) (*RecipeView, error) {
	if err := s.validateWrite(ctx, req); err != nil {
		return nil, err
	}

	recipeID, err := id.Generate("rcp")
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	recipe := &domain.Recipe{
		ID:          recipeID,
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		TagIDs:      req.TagIDs,
		Ingredients: toIngredientLines(req.Ingredients),
	}
	recipe.InitTimestamps()

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.search.IndexRecipe(ctx, recipe)

	s.logger.Info("recipe created",
		"recipe_id", recipeID,
		"author_id", authorID,
	)

	return s.Get(ctx, authorID, recipeID)
}

// Update validates and fully replaces a recipe. Only the author may
// update; the author and creation time never change.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID string, req WriteRecipeRequest) (*RecipeView, error) {
	recipe, err := s.getOwned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.validateWrite(ctx, req); err != nil {
		return nil, err
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	recipe.Image = req.Image
	recipe.TagIDs = req.TagIDs
	recipe.Ingredients = toIngredientLines(req.Ingredients)
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	s.search.IndexRecipe(ctx, recipe)

	return s.Get(ctx, userID, recipeID)
}

// Delete removes a recipe. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	if _, err := s.getOwned(ctx, userID, recipeID); err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("recipe not found")
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.search.RemoveRecipe(ctx, recipeID)

	s.logger.Info("recipe deleted", "recipe_id", recipeID, "user_id", userID)
	return nil
}

// Get returns the full projection of one recipe as seen by viewerID
// (empty for anonymous).
func (s *RecipeService) Get(ctx context.Context, viewerID, recipeID string) (*RecipeView, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	views, err := s.buildViews(ctx, viewerID, []*domain.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// List returns a page of recipe projections matching the request.
// The favorited and cart filters only apply for authenticated viewers;
// anonymous requests ignore them.
func (s *RecipeService) List(ctx context.Context, viewerID string, req ListRecipesRequest) (*RecipePage, error) {
	filter := domain.RecipeFilter{
		TagSlugs: req.TagSlugs,
		AuthorID: req.AuthorID,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	if viewerID != "" {
		if req.IsFavorited {
			filter.FavoritedBy = viewerID
		}
		if req.IsInShoppingCart {
			filter.InCartOf = viewerID
		}
	}

	recipes, total, err := s.store.ListRecipes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	views, err := s.buildViews(ctx, viewerID, recipes)
	if err != nil {
		return nil, err
	}
	return &RecipePage{Recipes: views, Total: total}, nil
}

// getOwned loads a recipe and verifies userID is its author.
func (s *RecipeService) getOwned(ctx context.Context, userID, recipeID string) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe.AuthorID != userID {
		return nil, domainerrors.Forbidden("only the author may modify this recipe")
	}
	return recipe, nil
}

// validateWrite enforces the aggregate invariants: at least one tag and
// one ingredient, no duplicates within either set, every referenced
// catalog entry must exist, and amounts must be positive.
func (s *RecipeService) validateWrite(ctx context.Context, req WriteRecipeRequest) error {
	if err := validate.Validate(req); err != nil {
		return err
	}

	seenTags := make(map[string]bool, len(req.TagIDs))
	for _, tagID := range req.TagIDs {
		if seenTags[tagID] {
			return domainerrors.Validationf("duplicate tag %q", tagID)
		}
		seenTags[tagID] = true
	}

	tags, err := s.store.GetTagsByIDs(ctx, req.TagIDs)
	if err != nil {
		return fmt.Errorf("resolve tags: %w", err)
	}
	if len(tags) != len(req.TagIDs) {
		found := make(map[string]bool, len(tags))
		for _, tag := range tags {
			found[tag.ID] = true
		}
		for _, tagID := range req.TagIDs {
			if !found[tagID] {
				return domainerrors.Validationf("unknown tag %q", tagID)
			}
		}
	}

	seenIngredients := make(map[string]bool, len(req.Ingredients))
	ingredientIDs := make([]string, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		if seenIngredients[line.ID] {
			return domainerrors.Validationf("duplicate ingredient %q", line.ID)
		}
		seenIngredients[line.ID] = true
		ingredientIDs = append(ingredientIDs, line.ID)
	}

	ingredients, err := s.store.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return fmt.Errorf("resolve ingredients: %w", err)
	}
	if len(ingredients) != len(ingredientIDs) {
		found := make(map[string]bool, len(ingredients))
		for _, ing := range ingredients {
			found[ing.ID] = true
		}
		for _, ingredientID := range ingredientIDs {
			if !found[ingredientID] {
				return domainerrors.Validationf("unknown ingredient %q", ingredientID)
			}
		}
	}

	return nil
}

// buildViews projects recipes for the viewer, resolving authors, tags,
// ingredient lines, and the viewer's favorite/cart flags in batches.
func (s *RecipeService) buildViews(ctx context.Context, viewerID string, recipes []*domain.Recipe) ([]*RecipeView, error) {
	if len(recipes) == 0 {
		return []*RecipeView{}, nil
	}

	tagIDSet := make(map[string]bool)
	ingredientIDSet := make(map[string]bool)
	recipeIDs := make([]string, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		for _, tagID := range r.TagIDs {
			tagIDSet[tagID] = true
		}
		for _, line := range r.Ingredients {
			ingredientIDSet[line.IngredientID] = true
		}
	}

	tagsByID, err := s.resolveTags(ctx, tagIDSet)
	if err != nil {
		return nil, err
	}
	ingredientsByID, err := s.resolveIngredients(ctx, ingredientIDSet)
	if err != nil {
		return nil, err
	}

	favorites, err := s.store.RelationSet(ctx, domain.RelationFavorite, viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve favorites: %w", err)
	}
	inCart, err := s.store.RelationSet(ctx, domain.RelationCart, viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}

	// Authors repeat across a page; fetch each once.
	authorsByID := make(map[string]*UserProfile)

	views := make([]*RecipeView, 0, len(recipes))
	for _, r := range recipes {
		author, ok := authorsByID[r.AuthorID]
		if !ok {
			user, err := s.store.GetUser(ctx, r.AuthorID)
			if err != nil {
				return nil, fmt.Errorf("get recipe author: %w", err)
			}
			author = &UserProfile{
				ID:        user.ID,
				Email:     user.Email,
				Username:  user.Username,
				FirstName: user.FirstName,
				LastName:  user.LastName,
			}
			if viewerID != "" && viewerID != user.ID {
				subscribed, err := s.store.SubscriptionExists(ctx, viewerID, user.ID)
				if err != nil {
					return nil, fmt.Errorf("check subscription: %w", err)
				}
				author.IsSubscribed = subscribed
			}
			authorsByID[r.AuthorID] = author
		}

		view := &RecipeView{
			ID:               r.ID,
			Author:           author,
			Name:             r.Name,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			Image:            r.Image,
			Tags:             make([]*domain.Tag, 0, len(r.TagIDs)),
			Ingredients:      make([]IngredientView, 0, len(r.Ingredients)),
			IsFavorited:      favorites[r.ID],
			IsInShoppingCart: inCart[r.ID],
			CreatedAt:        r.CreatedAt,
		}
		for _, tagID := range r.TagIDs {
			if tag, ok := tagsByID[tagID]; ok {
				view.Tags = append(view.Tags, tag)
			}
		}
		for _, line := range r.Ingredients {
			ing, ok := ingredientsByID[line.IngredientID]
			if !ok {
				continue
			}
			view.Ingredients = append(view.Ingredients, IngredientView{
				ID:              ing.ID,
				Name:            ing.Name,
				MeasurementUnit: ing.MeasurementUnit,
				Amount:          line.Amount,
			})
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *RecipeService) resolveTags(ctx context.Context, idSet map[string]bool) (map[string]*domain.Tag, error) {
	ids := make([]string, 0, len(idSet))
	for tagID := range idSet {
		ids = append(ids, tagID)
	}
	tags, err := s.store.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	byID := make(map[string]*domain.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}
	return byID, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, idSet map[string]bool) (map[string]*domain.Ingredient, error) {
	ids := make([]string, 0, len(idSet))
	for ingredientID := range idSet {
		ids = append(ids, ingredientID)
	}
	ingredients, err := s.store.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve ingredients: %w", err)
	}
	byID := make(map[string]*domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	return byID, nil
}

func toIngredientLines(reqs []IngredientLineRequest) []domain.IngredientLine {
	lines := make([]domain.IngredientLine, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, domain.IngredientLine{
			IngredientID: r.ID,
			Amount:       r.Amount,
		})
	}
	return lines
}
