package providers

import (
	"github.com/samber/do/v2"

	"github.com/ideaboard/ideaboard-server/internal/config"
	"github.com/ideaboard/ideaboard-server/internal/logger"
	"github.com/ideaboard/ideaboard-server/internal/store"
)

// GatewayHandle wraps the storage gateway with shutdown capability.
type GatewayHandle struct {
	*store.Gateway
}

// Shutdown implements do.Shutdownable.
func (h *GatewayHandle) Shutdown() error {
	return h.Close()
}

// ProvideGateway provides the storage gateway.
//
// The gateway is lazy: constructing it opens nothing. The backend connects
// on the first storage operation (or the first health probe), and every
// later caller shares that one handle.
func ProvideGateway(i do.Injector) (*GatewayHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	gateway := store.NewGateway(cfg.Storage, log.Logger)

	log.Info("Storage gateway configured",
		"kind", cfg.Storage.Kind,
		"path", cfg.Storage.Path,
		"address", cfg.Storage.Address,
	)

	return &GatewayHandle{Gateway: gateway}, nil
}
