package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys this package stores in a context.Context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	sessionKey   = contextKey("session")
)

// GetUserIDFromContext retrieves the authenticated user ID stored by
// AuthMiddleware. It returns false on public routes.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx is GetUserIDFromContext for a plain context.Context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
