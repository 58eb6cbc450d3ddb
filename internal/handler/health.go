package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rise-labs/shelf-backend/internal/model"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is anything /healthz can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
	log  *zap.SugaredLogger
}

func NewHealthHandler(deps map[string]Pinger, log *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{deps: deps, log: log}
}

// Ping godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "shelf API server is running",
	})
}

// Healthz godoc
// @Summary Readiness check
// @Description Pings every backing store.
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Failure 503 {object} model.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := model.HealthResponse{Status: "ok", Dependencies: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.log.Warnw("health check failed", "dependency", name, "error", err)
			resp.Status = "degraded"
			resp.Dependencies[name] = "down"
			continue
		}
		resp.Dependencies[name] = "up"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
