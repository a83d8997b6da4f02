package logger

import "context"

type requestIDKey struct{}

// ContextWithRequestID stores the HTTP request id so loggers derived with
// WithContext tag their records with it.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
