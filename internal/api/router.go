package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/dbpool"
	"github.com/routeviz/routeviz/internal/middleware"
	"github.com/routeviz/routeviz/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool // nil when history is disabled
	Hub         *ws.Hub
	Graphs      GraphLoader
	Routes      RouteService
	Graph       GraphService
	History     HistoryService
	CORSOrigins []string
	WSOrigins   []string
	Version     string
	RateLimit   float64
	RateBurst   int
	AdminAPIKey string // empty disables admin endpoints
}

// Router-level limits.
const (
	maxBodySize = 64 << 10 // 64 KB; route requests are two points
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Retry-After"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, deps.Graphs, log, deps.Version)
	routes := NewRouteHandler(deps.Routes, deps.History, log)
	graph := NewGraphHandler(deps.Graph, log)

	// Health, readiness and the event feed are not rate limited.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.WSOrigins))

	limited := api.Group("", middleware.NewRateLimiter(ctx, deps.RateLimit, deps.RateBurst).Handler())

	// Route comparisons and history.
	limited.POST("/routes", routes.Compare)
	limited.GET("/routes", routes.List)
	limited.GET("/routes/:id", routes.Get)

	// Destructive history maintenance requires the admin key.
	admin := limited.Group("", middleware.AdminAuth(deps.AdminAPIKey, log))
	admin.DELETE("/routes", routes.Purge)

	// Road graph.
	limited.GET("/graph/stats", graph.Stats)
	limited.GET("/graph/nearest", graph.Nearest)
	limited.GET("/graph/nodes/:id", graph.Node)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
