// Package di provides dependency injection configuration for the Idea Board server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/ideaboard/ideaboard-server/internal/config"
	"github.com/ideaboard/ideaboard-server/internal/di/providers"
	"github.com/ideaboard/ideaboard-server/internal/logger"
	"github.com/ideaboard/ideaboard-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideGateway)

	// Business services
	do.Provide(injector, providers.ProvideIdeaService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.GatewayHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.IdeaService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
