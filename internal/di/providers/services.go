package providers

import (
	"github.com/samber/do/v2"

	"github.com/ideaboard/ideaboard-server/internal/config"
	"github.com/ideaboard/ideaboard-server/internal/logger"
	"github.com/ideaboard/ideaboard-server/internal/service"
)

// ProvideIdeaService provides the idea business logic service.
func ProvideIdeaService(i do.Injector) (*service.IdeaService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	gatewayHandle := do.MustInvoke[*GatewayHandle](i)

	return service.NewIdeaService(gatewayHandle.Gateway, cfg.Storage.OpTimeout, log.Logger), nil
}
