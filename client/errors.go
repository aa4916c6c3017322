package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a structured error response from the routeviz API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
	RetryAfter string `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("routeviz: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("routeviz: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func asAPIError(err error) (*APIError, bool) {
	var e *APIError
	ok := errors.As(err, &e)
	return e, ok
}

// IsNotFound reports a 404, for an unknown node or route.
func IsNotFound(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.StatusCode == 404
}

// IsNoPath reports that the snapped nodes are not connected.
func IsNoPath(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.Code == "no_path"
}

// IsHistoryDisabled reports that the server runs without a database.
func IsHistoryDisabled(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.Code == "history_disabled"
}

// IsUnauthorized reports a missing or rejected admin key (401), or admin
// endpoints disabled on the server (403).
func IsUnauthorized(err error) bool {
	e, ok := asAPIError(err)
	return ok && (e.StatusCode == 401 || e.StatusCode == 403)
}

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool {
	e, ok := asAPIError(err)
	return ok && e.StatusCode == 429
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
