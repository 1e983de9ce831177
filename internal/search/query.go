package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a recipe search.
type Params struct {
	Query string // User's search query

	// Filters
	TagSlugs       []string // Exact tag slugs, OR across slugs
	MaxCookingTime int      // Minutes; 0 means no cap

	// Pagination
	Limit  int
	Offset int

	// Sorting: "relevance", "name", "recent", "cooking_time"
	SortBy    string
	SortOrder string // "asc", "desc"

	Highlight bool
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		SortOrder: "desc",
		Highlight: true,
	}
}

// Result holds the search response.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is a single matching recipe.
type Hit struct {
	ID          string            `json:"id"`
	Score       float64           `json:"score"`
	Name        string            `json:"name"`
	Author      string            `json:"author,omitempty"`
	TagSlugs    []string          `json:"tag_slugs,omitempty"`
	CookingTime int               `json:"cooking_time,omitempty"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// Search executes a recipe search.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	addSorting(searchRequest, params)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("author")
		searchRequest.Highlight.AddField("ingredients")
	}

	searchRequest.Fields = []string{
		"id", "name", "author", "tag_slugs", "cooking_time",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if n, ok := hit.Fields["name"].(string); ok {
			h.Name = n
		}
		if a, ok := hit.Fields["author"].(string); ok {
			h.Author = a
		}
		if ct, ok := hit.Fields["cooking_time"].(float64); ok {
			h.CookingTime = int(ct)
		}
		// A single stored value comes back as a string, multiple as a slice.
		switch slugs := hit.Fields["tag_slugs"].(type) {
		case string:
			h.TagSlugs = []string{slugs}
		case []interface{}:
			for _, v := range slugs {
				if slug, ok := v.(string); ok {
					h.TagSlugs = append(h.TagSlugs, slug)
				}
			}
		}

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
//
// Text strategy: name matches score highest, then ingredients and
// author, with a fuzzy name match for typo tolerance and a prefix match
// for autocomplete.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		ingredientMatch := bleve.NewMatchQuery(params.Query)
		ingredientMatch.SetField("ingredients")
		ingredientMatch.SetBoost(1.5)
		textQueries = append(textQueries, ingredientMatch)

		authorMatch := bleve.NewMatchQuery(params.Query)
		authorMatch.SetField("author")
		textQueries = append(textQueries, authorMatch)

		textMatch := bleve.NewMatchQuery(params.Query)
		textMatch.SetField("text")
		textMatch.SetBoost(0.5)
		textQueries = append(textQueries, textMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if len(params.TagSlugs) > 0 {
		tagQueries := make([]query.Query, len(params.TagSlugs))
		for i, slug := range params.TagSlugs {
			tq := bleve.NewTermQuery(slug)
			tq.SetField("tag_slugs")
			tagQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(tagQueries...))
	}

	if params.MaxCookingTime > 0 {
		min := 0.0
		max := float64(params.MaxCookingTime)
		rangeQuery := bleve.NewNumericRangeQuery(&min, &max)
		rangeQuery.SetField("cooking_time")
		queries = append(queries, rangeQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-name"})
		} else {
			req.SortBy([]string{"name"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at"})
		} else {
			req.SortBy([]string{"-created_at"})
		}
	case "cooking_time":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-cooking_time"})
		} else {
			req.SortBy([]string{"cooking_time"})
		}
	default:
		req.SortBy([]string{"-_score"})
	}
}
