package errors

import (
	stderrors "errors"
	"net/http"
)

// Bearer token error types
const (
	ErrorTypeTokenMissing ErrorType = "token_missing"
	ErrorTypeTokenExpired ErrorType = "token_expired"
	ErrorTypeTokenInvalid ErrorType = "token_invalid"
)

// AuthError is an AppError raised while authenticating a request.
type AuthError struct {
	*AppError
	// ShouldLog is false for failures expected in normal traffic, such as an
	// expired token.
	ShouldLog bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

func newAuthError(errType ErrorType, message string, shouldLog bool) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    errType,
			Message: message,
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: shouldLog,
	}
}

// NewTokenMissingError reports a request without a bearer token.
func NewTokenMissingError() *AuthError {
	return newAuthError(ErrorTypeTokenMissing, "Authorization header is required", false)
}

// NewTokenExpiredError reports a token whose exp claim has passed.
func NewTokenExpiredError() *AuthError {
	return newAuthError(ErrorTypeTokenExpired, "Token has expired", false)
}

// NewTokenInvalidError reports a token that failed signature, issuer or
// claim checks.
func NewTokenInvalidError() *AuthError {
	return newAuthError(ErrorTypeTokenInvalid, "Token is invalid", true)
}

func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

func IsAuthError(err error) bool {
	return GetAuthError(err) != nil
}

// ShouldLogAuthError reports whether err deserves a warning in the logs.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}
