package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/shared/constants"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// CustomLogger writes one access record per request. Server errors log at
// error level, client errors at warn and the rest at debug.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"uri", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}

		if userID, exists := c.Get(constants.ContextKeyUserID); exists {
			args = append(args, "user_id", userID, "role", c.GetString(constants.ContextKeyUserRole))
		}

		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		reqLog := log.WithContext(c.Request.Context())
		status := c.Writer.Status()
		switch {
		case status >= 500:
			reqLog.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			reqLog.Warnw("HTTP request completed with client error", args...)
		default:
			reqLog.Debugw("HTTP request completed successfully", args...)
		}
	}
}
