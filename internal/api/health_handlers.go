package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ideaboard/ideaboard-server/internal/record"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	storageHealth := s.checkStorage(ctx)
	components["storage"] = storageHealth
	if storageHealth.Status == "unhealthy" {
		overall = "unhealthy"
	} else if storageHealth.Status == "degraded" {
		overall = "degraded"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkStorage verifies the storage backend is reachable through the gateway.
// On a cold process this resolves the backend, so the first health probe also
// surfaces startup misconfiguration.
func (s *Server) checkStorage(ctx context.Context) ComponentHealth {
	// A client-only bundle carries no gateway.
	if s.gateway == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "storage not configured",
		}
	}

	start := time.Now()

	st, err := s.gateway.Resolve(ctx)
	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: time.Since(start).String(),
			Message: "storage backend unavailable",
		}
	}

	// Cheap read to verify the handle still answers. An empty table is fine.
	_, err = st.List(ctx, record.IdeaTable)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "storage read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}
