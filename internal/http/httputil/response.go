// Package httputil provides shared HTTP response helpers.
package httputil

import (
	"github.com/gin-gonic/gin"

	"househunters/internal/metrics"
)

const RequestIDKey = "request_id"

// RequestID returns the id set by the request id middleware, if any.
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(RequestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RespondError writes the standard error body and aborts the request.
// detail carries the human readable message clients display.
func RespondError(c *gin.Context, status int, code, detail string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	body := gin.H{"detail": detail, "code": code}
	if rid := RequestID(c); rid != "" {
		body["request_id"] = rid
	}
	c.AbortWithStatusJSON(status, body)
}
