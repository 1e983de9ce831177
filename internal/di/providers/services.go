package providers

import (
	"github.com/samber/do/v2"

	"github.com/savorly/savorly-server/internal/auth"
	"github.com/savorly/savorly-server/internal/config"
	"github.com/savorly/savorly-server/internal/logger"
	"github.com/savorly/savorly-server/internal/service"
)

// ProvideServices wires all business services against the store, token
// service, and search index.
func ProvideServices(i do.Injector) (*service.Services, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.New(storeHandle.Store, tokenService, indexHandle.Index, cfg, log.Logger), nil
}
