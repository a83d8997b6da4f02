package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/utils"
	"github.com/systech-labs/deskflow/internal/shared/version"
)

// Pinger is a dependency the health check pings, such as the database or
// Redis.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc struct {
	Label string
	Fn    func(ctx context.Context) error
}

func (p PingFunc) Name() string                   { return p.Label }
func (p PingFunc) Ping(ctx context.Context) error { return p.Fn(ctx) }

type HealthHandler struct {
	deps   []Pinger
	logger logger.Interface
}

func NewHealthHandler(logger logger.Interface, deps ...Pinger) *HealthHandler {
	return &HealthHandler{deps: deps, logger: logger}
}

type HealthStatus struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version version.Info      `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// HealthCheck handles GET /health. It answers 503 when any dependency fails
// its ping.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:  "healthy",
		Service: "deskflow",
		Version: version.Get(),
		Checks:  make(map[string]string, len(h.deps)),
	}

	code := http.StatusOK
	for _, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Warnw("health check dependency failed", "dependency", dep.Name(), "error", err)
			status.Checks[dep.Name()] = "down"
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[dep.Name()] = "up"
	}

	utils.SuccessResponse(c, code, "", status)
}
