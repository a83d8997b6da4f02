// Package common provides shared HTTP handler utilities.
package common

import (
	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

// RequireActor returns the authenticated actor, or writes a 401 and reports
// false when the auth middleware did not run.
func RequireActor(c *gin.Context) (authorization.Actor, bool) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return authorization.Actor{}, false
	}
	return actor, true
}

// BindJSON binds the request body into req and writes a 400 on failure.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return false
	}
	return true
}
