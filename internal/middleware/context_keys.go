package middleware

import (
	"context"
	"time"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey     = contextKey("logger")
	userIDKey        = contextKey("userID")
	tokenIssuedAtKey = contextKey("tokenIssuedAt")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// GetTokenIssuedAtFromCtx retrieves the issued-at time of the access token
// that authenticated this request.
func GetTokenIssuedAtFromCtx(ctx context.Context) (time.Time, bool) {
	issuedAt, ok := ctx.Value(tokenIssuedAtKey).(time.Time)
	return issuedAt, ok
}
