package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/infrastructure/ratelimit"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

// RateLimit caps calls per authenticated user, or per client IP before
// authentication. A limiter error lets the request through.
func RateLimit(limiter ratelimit.RateLimiter, limits ratelimit.Limits, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if actor, ok := authorization.ActorFromContext(c); ok {
			key = fmt.Sprintf("user:%d", actor.UserID)
		}

		allowed, err := limiter.Allow(c.Request.Context(), key, limits)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}

		if !allowed {
			utils.AbortWithError(c, errors.NewTooManyRequestsError("rate limit exceeded, please try again later"))
			return
		}

		c.Next()
	}
}
