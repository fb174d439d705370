package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/logging"
)

// RequestLogger logs one line per request. Server errors are logged at error level.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		if c.Writer.Status() >= 500 {
			log.Error(c.Request.Context(), "request failed", args...)
			return
		}
		log.Info(c.Request.Context(), "request", args...)
	}
}
