// Package middleware holds the Gin middleware shared by the dashboard page
// and the report API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
)

// Propagated ID headers.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	requestIDKey     = "request_id"
	correlationIDKey = "correlation_id"

	// maxIDLength caps a caller-supplied ID before it reaches the logs.
	maxIDLength = 128
)

// RequestID echoes X-Request-ID, generating a UUID when the caller sent
// none or an unusable one, and tags the request logger with it.
func RequestID() gin.HandlerFunc {
	return propagate(HeaderRequestID, requestIDKey, logging.WithRequestID)
}

// CorrelationID does the same for X-Correlation-ID, which ties together
// the page load and the image and download requests it triggers.
func CorrelationID() gin.HandlerFunc {
	return propagate(HeaderCorrelationID, correlationIDKey, logging.WithCorrelationID)
}

func propagate(header, key string, tag func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if !usableID(id) {
			id = uuid.NewString()
		}

		c.Set(key, id)
		c.Header(header, id)
		c.Request = c.Request.WithContext(tag(c.Request.Context(), id))

		c.Next()
	}
}

// usableID accepts short printable ASCII only.
func usableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

// GetRequestID returns the ID assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
