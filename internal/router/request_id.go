package router

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDContextKey is where the per-request id lives in the gin context.
const RequestIDContextKey = "request_id"

// RequestID tags every request with a fresh id, echoed in the response so
// callers can quote it when reporting problems. An inbound X-Request-ID is
// honored to keep ids stable across proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDContextKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
