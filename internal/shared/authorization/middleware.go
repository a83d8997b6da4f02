package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/shared/constants"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

// ActorFromContext returns the actor stored by the auth middleware.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(constants.ContextKeyActor)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}

// SetActor stores the actor and the plain user_id/user_role keys used by
// request logging.
func SetActor(c *gin.Context, actor Actor) {
	c.Set(constants.ContextKeyActor, actor)
	c.Set(constants.ContextKeyUserID, actor.UserID)
	c.Set(constants.ContextKeyUserRole, actor.Role.String())
}

func requireRole(allowed func(UserRole) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			utils.AbortWithError(c, errors.NewUnauthorizedError("authentication required"))
			return
		}
		if !allowed(actor.Role) {
			utils.AbortWithError(c, errors.NewForbiddenError(message))
			return
		}
		c.Next()
	}
}

// RequireInternal rejects client actors.
func RequireInternal() gin.HandlerFunc {
	return requireRole(UserRole.IsInternal, "internal access required")
}

// RequireAdminTier admits admin and company_admin only.
func RequireAdminTier() gin.HandlerFunc {
	return requireRole(UserRole.IsAdminTier, "admin access required")
}
