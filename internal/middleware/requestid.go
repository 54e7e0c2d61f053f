package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-ID"
	ContextRequestID = "request_id"
)

// RequestID tags each request with a unique ID, reusing one supplied by the
// caller so IDs survive proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}
