package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/savorly/savorly-server/internal/config"
	"github.com/savorly/savorly-server/internal/domain"
	"github.com/savorly/savorly-server/internal/logger"
	"github.com/savorly/savorly-server/internal/search"
	"github.com/savorly/savorly-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the index from the store when the
// index is empty but recipes exist (fresh index file next to an existing
// database). Called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	services := do.MustInvoke[*service.Services](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := services.Search.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	_, total, err := storeHandle.ListRecipes(ctx, domain.RecipeFilter{Limit: 1})
	if err != nil || total == 0 {
		return
	}

	log.Info("Search index is empty but recipes exist, triggering initial reindex",
		"recipe_count", total,
	)

	go func() {
		reindexCtx := context.Background()
		if err := services.Search.Reindex(reindexCtx); err != nil {
			log.Error("Initial search reindex failed", "error", err)
		} else {
			count, _ := services.Search.DocumentCount()
			log.Info("Initial search reindex completed", "documents", count)
		}
	}()
}
