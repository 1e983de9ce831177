// Package search provides full-text recipe search using Bleve, with
// fuzzy matching, tag filtering, and cooking-time ranges.
package search

import (
	"github.com/savorly/savorly-server/internal/domain"
)

// RecipeDocument is the shape of a recipe in the Bleve index.
//
// Author username, tag slugs, and ingredient names are denormalized into
// the document so one query covers everything a user might type. The
// caller provides them; the search package does not depend on the store.
type RecipeDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`

	Author      string   `json:"author,omitempty"`
	TagSlugs    []string `json:"tag_slugs,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`

	CookingTime int   `json:"cooking_time"` // Minutes
	CreatedAt   int64 `json:"created_at"`   // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve would otherwise index Go struct field names (capitalized), which
// would not match the mapping.
func (d *RecipeDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":           d.ID,
		"name":         d.Name,
		"text":         d.Text,
		"cooking_time": d.CookingTime,
		"created_at":   d.CreatedAt,
	}

	if d.Author != "" {
		m["author"] = d.Author
	}
	if len(d.TagSlugs) > 0 {
		m["tag_slugs"] = d.TagSlugs
	}
	if len(d.Ingredients) > 0 {
		m["ingredients"] = d.Ingredients
	}

	return m
}

// RecipeToDocument converts a domain Recipe to a RecipeDocument.
// The denormalized fields come from the caller.
func RecipeToDocument(recipe *domain.Recipe, author string, tagSlugs, ingredientNames []string) *RecipeDocument {
	return &RecipeDocument{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Text:        recipe.Text,
		Author:      author,
		TagSlugs:    tagSlugs,
		Ingredients: ingredientNames,
		CookingTime: recipe.CookingTime,
		CreatedAt:   recipe.CreatedAt.UnixMilli(),
	}
}
