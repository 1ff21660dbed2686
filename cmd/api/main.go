// Package main provides the entry point for the Idea Board server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/ideaboard/ideaboard-server/internal/di"
	"github.com/ideaboard/ideaboard-server/internal/di/providers"
	"github.com/ideaboard/ideaboard-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The storage gateway uses a wrapper type, so close it explicitly in case
	// the container missed it.
	if gatewayHandle, err := do.Invoke[*providers.GatewayHandle](injector); err == nil {
		log.Info("Closing storage backend...")
		if err := gatewayHandle.Shutdown(); err != nil {
			log.Error("Failed to close storage backend", "error", err)
		} else {
			log.Info("Storage backend closed successfully")
		}
	}

	log.Info("Idea Board server stopped")
}
