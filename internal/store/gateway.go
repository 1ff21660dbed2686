package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ideaboard/ideaboard-server/internal/config"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
)

// Opener opens a backend connection. Injectable so tests can count
// connection attempts or substitute fakes.
type Opener func(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error)

// OpenBackend opens the backend selected by the configuration.
func OpenBackend(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Kind {
	case config.BackendEmbedded:
		return openEmbedded(cfg, logger)
	case config.BackendRemote:
		return openRemote(ctx, cfg, logger)
	default:
		return nil, apperrors.Internal(fmt.Sprintf("unknown storage kind %q", cfg.Kind))
	}
}

// Gateway is the process-wide handle to the storage backend. The handle is
// written exactly once, on first resolve, and read-only thereafter:
// concurrent first callers share a single connection attempt and all
// observe its outcome, error included.
type Gateway struct {
	cfg    config.StorageConfig
	logger *slog.Logger
	open   Opener

	once  sync.Once
	store Store
	err   error
}

// NewGateway creates a gateway for the configured backend. No connection is
// made until the first Resolve call.
func NewGateway(cfg config.StorageConfig, logger *slog.Logger) *Gateway {
	return NewGatewayWithOpener(cfg, logger, OpenBackend)
}

// NewGatewayWithOpener creates a gateway with a custom backend opener.
func NewGatewayWithOpener(cfg config.StorageConfig, logger *slog.Logger, open Opener) *Gateway {
	return &Gateway{
		cfg:    cfg,
		logger: logger,
		open:   open,
	}
}

// Resolve returns the memoized backend handle, connecting on first use.
// A failed first attempt is memoized too: the backend choice is resolved
// once per process, not retried behind the caller's back.
func (g *Gateway) Resolve(ctx context.Context) (Store, error) {
	g.once.Do(func() {
		g.store, g.err = g.open(ctx, g.cfg, g.logger)
		if g.err != nil && g.logger != nil {
			g.logger.Error("storage backend initialization failed",
				"kind", g.cfg.Kind,
				"error", g.err,
			)
		}
	})
	return g.store, g.err
}

// Close releases the backend connection if one was ever opened. A gateway
// that was never resolved closes to a no-op and refuses later resolves.
func (g *Gateway) Close() error {
	g.once.Do(func() {
		g.err = apperrors.StorageUnavailable("storage gateway closed before initialization")
	})
	if g.store != nil {
		return g.store.Close()
	}
	return nil
}
