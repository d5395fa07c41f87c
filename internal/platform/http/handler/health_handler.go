// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Check is a named dependency probe. A failing critical check makes the service unhealthy.
type Check struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

// HealthHandler serves the /healthz endpoint.
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler creates a HealthHandler running the given checks on every GET.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles /healthz. HEAD and OPTIONS answer without probing dependencies.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if err := chk.Ping(ctx); err != nil {
			slog.Warn("health check failed", "check", chk.Name, "error", err)
			results[chk.Name] = "down"
			if chk.Critical {
				status = "down"
				code = http.StatusServiceUnavailable
			} else if status == "ok" {
				status = "degraded"
			}
			continue
		}
		results[chk.Name] = "ok"
	}

	c.JSON(code, gin.H{"status": status, "checks": results})
}
