// Package api provides the HTTP handlers for routeviz.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/db"
	"github.com/routeviz/routeviz/internal/dbpool"
	"github.com/routeviz/routeviz/internal/roadgraph"
	"github.com/routeviz/routeviz/internal/ws"
)

// GraphLoader reports whether the road graph has finished loading.
// *roadgraph.Provider satisfies it.
type GraphLoader interface {
	Loaded() (*roadgraph.Graph, bool)
}

func graphLoaded(l GraphLoader) (*roadgraph.Graph, bool) {
	if l == nil {
		return nil, false
	}

	return l.Loaded()
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	pool      *dbpool.Pool
	hub       *ws.Hub
	graphs    GraphLoader
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. pool may be nil when history is disabled.
func NewHealthHandler(pool *dbpool.Pool, hub *ws.Hub, graphs GraphLoader, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		pool:      pool,
		hub:       hub,
		graphs:    graphs,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Graph         string  `json:"graph"`
	GraphNodes    int     `json:"graph_nodes"`
	GraphEdges    int     `json:"graph_edges"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version,omitempty"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Graph:         "loading",
		Database:      "connected",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if g, ok := graphLoaded(h.graphs); ok {
		resp.Graph = "loaded"
		if g != nil {
			resp.GraphNodes = g.Len()
			resp.GraphEdges = g.EdgeCount()
		}
	}

	if h.hub != nil {
		resp.WSClients = h.hub.ClientCount()
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}

		resp.SchemaVersion = db.SchemaVersion()
	} else {
		resp.Database = "not_configured"
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready. The service is ready once the graph
// is loaded and, if configured, the database answers.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"graph":    "ok",
		"database": "ok",
	}
	status := "ready"
	statusCode := http.StatusOK

	if _, ok := graphLoaded(h.graphs); !ok {
		checks["graph"] = "loading"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	if h.pool == nil {
		checks["database"] = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			h.log.WithError(err).Error("readiness: database health check failed")
			checks["database"] = "error"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}
