package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/search"
	"github.com/savorly/savorly-server/internal/store"
)

// SearchService keeps the Bleve index in sync with the store and serves
// full-text recipe queries. Index maintenance is best-effort: a failed
// index write is logged, never surfaced to the caller, since the store
// remains the source of truth and a reindex repairs drift.
type SearchService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(st store.Store, index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{store: st, index: index, logger: logger}
}

// Search runs a full-text query over indexed recipes.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return result, nil
}

// IndexRecipe adds or refreshes one recipe in the index.
func (s *SearchService) IndexRecipe(ctx context.Context, recipe *domain.Recipe) {
	doc, err := s.buildDocument(ctx, recipe)
	if err != nil {
		s.logger.Warn("failed to build search document", "recipe_id", recipe.ID, "error", err)
		return
	}
	if err := s.index.IndexRecipe(doc); err != nil {
		s.logger.Warn("failed to index recipe", "recipe_id", recipe.ID, "error", err)
	}
}

// RemoveRecipe drops one recipe from the index.
func (s *SearchService) RemoveRecipe(ctx context.Context, recipeID string) {
	if err := s.index.DeleteRecipe(recipeID); err != nil {
		s.logger.Warn("failed to remove recipe from index", "recipe_id", recipeID, "error", err)
	}
}

// DocumentCount reports the number of indexed recipes.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Reindex rebuilds the index from the store. Run at startup and after
// mapping changes.
func (s *SearchService) Reindex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	const pageSize = 200
	offset := 0
	indexed := 0
	for {
		recipes, _, err := s.store.ListRecipes(ctx, domain.RecipeFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return fmt.Errorf("list recipes: %w", err)
		}
		if len(recipes) == 0 {
			break
		}

		docs := make([]*search.RecipeDocument, 0, len(recipes))
		for _, recipe := range recipes {
			doc, err := s.buildDocument(ctx, recipe)
			if err != nil {
				s.logger.Warn("skipping recipe during reindex", "recipe_id", recipe.ID, "error", err)
				continue
			}
			docs = append(docs, doc)
		}
		if err := s.index.IndexRecipes(docs); err != nil {
			return fmt.Errorf("index batch: %w", err)
		}

		indexed += len(docs)
		offset += pageSize
	}

	s.logger.Info("search reindex complete", "recipes", indexed)
	return nil
}

// buildDocument denormalizes a recipe into its search document: author
// username, tag slugs, and ingredient names.
func (s *SearchService) buildDocument(ctx context.Context, recipe *domain.Recipe) (*search.RecipeDocument, error) {
	author, err := s.store.GetUser(ctx, recipe.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	tags, err := s.store.GetTagsByIDs(ctx, recipe.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	tagSlugs := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagSlugs = append(tagSlugs, tag.Slug)
	}

	ingredientIDs := make([]string, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		ingredientIDs = append(ingredientIDs, line.IngredientID)
	}
	ingredients, err := s.store.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve ingredients: %w", err)
	}
	ingredientNames := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ingredientNames = append(ingredientNames, ing.Name)
	}

	return search.RecipeToDocument(recipe, author.Username, tagSlugs, ingredientNames), nil
}
