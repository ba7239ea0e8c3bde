package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neyamat7/pos-inventory-sub000/internal/interfaces/http/dto"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	service string
	checks  map[string]Pinger
}

// NewHealthHandler creates a new HealthHandler. checks are probed on /ready.
func NewHealthHandler(service string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{service: service, checks: checks}
}

// RegisterRoutes registers the probe routes on the engine root
func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health godoc
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok", "service": h.service})
}

// Ready godoc
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			status[name] = err.Error()
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Data:    status,
			Error:   &dto.ErrorInfo{Code: "ERR_NOT_READY", Message: "Dependencies unavailable"},
		})
		return
	}
	h.Success(c, status)
}
