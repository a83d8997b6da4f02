package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/systech-labs/deskflow/internal/infrastructure/auth"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/constants"
	apperrors "github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

// TokenVerifier is satisfied by *auth.JWTService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth turns the bearer token into an authorization.Actor on the
// context. Every ticket, task and sprint route sits behind it.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			authErr := apperrors.NewTokenInvalidError()
			if errors.Is(err, auth.ErrTokenExpired) {
				authErr = apperrors.NewTokenExpiredError()
			}
			if apperrors.ShouldLogAuthError(authErr) {
				m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			}
			utils.AbortWithError(c, authErr)
			return
		}

		authorization.SetActor(c, claims.Actor())
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewTokenMissingError()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewTokenInvalidError()
	}

	return strings.TrimSpace(parts[1]), nil
}
