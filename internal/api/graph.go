package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/routeviz/routeviz/internal/geo"
)

// GraphHandler serves read-only road graph endpoints.
type GraphHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler with the given service and logger.
func NewGraphHandler(svc GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// Stats handles GET /api/v1/graph/stats.
func (h *GraphHandler) Stats(c *gin.Context) {
	stats, err := h.svc.GraphStats(c.Request.Context())
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting graph stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, stats)
}

// Nearest handles GET /api/v1/graph/nearest?lat=..&lon=...
func (h *GraphHandler) Nearest(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "lat and lon query parameters are required numbers")

		return
	}

	res, err := h.svc.Nearest(c.Request.Context(), geo.Point{Lat: lat, Lon: lon})
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("snapping point")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, res)
}

// Node handles GET /api/v1/graph/nodes/:id.
func (h *GraphHandler) Node(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "node id must be an integer")

		return
	}

	node, err := h.svc.Node(c.Request.Context(), id)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting node")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, node)
}
