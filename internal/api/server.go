// Package api provides the HTTP API server and endpoint handlers for the Idea Board application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ideaboard/ideaboard-server/internal/ratelimit"
	"github.com/ideaboard/ideaboard-server/internal/service"
	"github.com/ideaboard/ideaboard-server/internal/store"
	"github.com/ideaboard/ideaboard-server/internal/validation"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Idea *service.IdeaService
}

// Server holds dependencies for the API endpoints.
//
// A server may be constructed without server capability (nil services and
// nil gateway), the shape a client-only bundle gets. Such a server answers
// every idea endpoint with a server-only failure and never touches storage.
type Server struct {
	services  *Services
	gateway   *store.Gateway
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger

	// Rate limiter for mutating idea endpoints, keyed by client IP.
	writeLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, gateway *store.Gateway, logger *slog.Logger) *Server {
	s := &Server{
		services:     services,
		gateway:      gateway,
		validator:    validation.New(),
		router:       chi.NewRouter(),
		logger:       logger,
		writeLimiter: ratelimit.New(2, 20), // 2 rps with a burst of 20 per client IP
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Idea Board API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerIdeaRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// The consumer is a browser-rendered client, possibly served from a
	// different origin during development.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(RateLimitMiddleware(s.writeLimiter, s.logger,
		"/api/ideas/submit",
		"/api/ideas/update",
		"/api/ideas/delete",
	))
}

// hasServerCapability reports whether this server instance carries the
// server-only execution context. Endpoints check it before any storage
// access; invoking them without capability is a deployment error, fatal to
// the call but not the process.
func (s *Server) hasServerCapability() bool {
	return s.services != nil && s.services.Idea != nil
}
