package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader is the HTTP header used to propagate the request ID.
	RequestIDHeader = "X-Request-ID"
)

// RequestID assigns each request a UUID. A client-supplied X-Request-ID is
// adopted only when it is itself a UUID, so the CLI can correlate its own
// logs; anything else is recorded as client_request_id and replaced.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			if parsed, err := uuid.Parse(clientID); err == nil {
				id = parsed.String()
			} else {
				log.WithFields(logrus.Fields{
					"request_id":        id,
					"client_request_id": clientID,
				}).Debug("non-UUID client request ID replaced")
				c.Set("client_request_id", clientID)
			}
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
