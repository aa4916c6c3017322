package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/routeviz/routeviz/internal/httputil"
	"github.com/routeviz/routeviz/internal/metrics"
	"github.com/routeviz/routeviz/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeNodeNotFound    = "node_not_found"
	ErrCodeNoPath          = "no_path"
	ErrCodeEmptyGraph      = "empty_graph"
	ErrCodeHistoryDisabled = "history_disabled"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnavailable     = "unavailable"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondDomainError maps service errors onto HTTP responses. It returns
// false when err is not one of the known sentinels, leaving the caller to
// log and answer 500.
func respondDomainError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	case errors.Is(err, models.ErrNodeNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNodeNotFound, err.Error())
	case errors.Is(err, models.ErrRouteNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	case errors.Is(err, models.ErrNoPath):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeNoPath, "no path between the snapped nodes")
	case errors.Is(err, models.ErrEmptyGraph):
		respondError(c, http.StatusServiceUnavailable, ErrCodeEmptyGraph, "road graph has no nodes")
	case errors.Is(err, models.ErrHistoryDisabled):
		respondError(c, http.StatusNotImplemented, ErrCodeHistoryDisabled, "route history is not configured")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "request timed out")
	default:
		return false
	}

	return true
}
