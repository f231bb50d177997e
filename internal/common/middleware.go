package common

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request id in both directions
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key of the request id
	ContextKeyRequestID = "rid"
)

// RequestID tags every request with an id, reusing the one sent by a proxy
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Next()
	}
}

// RequestIDFrom returns the id set by RequestID, or ""
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// Logger writes one line per request with its id
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[http] rid=%s %s %s status=%d dur=%s",
			RequestIDFrom(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
