package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/models"
)

// RouteHandler serves route comparison and history endpoints.
type RouteHandler struct {
	routes  RouteService
	history HistoryService
	log     *logrus.Logger
}

// NewRouteHandler creates a RouteHandler with the given services and logger.
func NewRouteHandler(routes RouteService, history HistoryService, log *logrus.Logger) *RouteHandler {
	return &RouteHandler{routes: routes, history: history, log: log}
}

// Compare handles POST /api/v1/routes.
func (h *RouteHandler) Compare(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.routes.Compare(c.Request.Context(), *req.Start, *req.End)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("comparing routes")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":            "route.compare",
		"route_id":          result.ID,
		"dijkstra_explored": result.Dijkstra.Explored,
		"astar_explored":    result.AStar.Explored,
		"distance":          result.Distance,
	}).Info("audit")

	c.JSON(http.StatusOK, result)
}

// List handles GET /api/v1/routes.
func (h *RouteHandler) List(c *gin.Context) {
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	entries, hasMore, err := h.history.ListRoutes(c.Request.Context(), limit, offset)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("listing routes")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if entries == nil {
		entries = []models.RouteHistoryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"routes": entries, "has_more": hasMore})
}

// Get handles GET /api/v1/routes/:id.
func (h *RouteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "route id must be a UUID")

		return
	}

	entry, err := h.history.GetRoute(c.Request.Context(), id)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting route")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, entry)
}

// Purge handles DELETE /api/v1/routes.
func (h *RouteHandler) Purge(c *gin.Context) {
	retentionDays := 30
	if rd := c.Query("retention_days"); rd != "" {
		v, err := strconv.Atoi(rd)
		if err != nil || v < 1 {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "retention_days must be a positive integer")

			return
		}
		retentionDays = v
	}

	deleted, err := h.history.PurgeRoutes(c.Request.Context(), time.Duration(retentionDays)*24*time.Hour)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("failed to purge route history")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "failed to purge route history")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted":        deleted,
		"retention_days": retentionDays,
	})
}
