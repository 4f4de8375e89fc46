package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// SessionResolver turns an authenticated user ID into a request session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, userID string) (domain.Session, error)
}

// SessionMiddleware resolves the owner, role and actor of the authenticated
// user. It must run after AuthMiddleware.
func SessionMiddleware(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		session, err := resolver.ResolveSession(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUnauthorized) {
				logger.Warn("Session user no longer exists")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			logger.Error("Failed to resolve session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), sessionKey, session)
		ctx = WithLogger(ctx, logger.With(
			slog.String("owner_id", session.OwnerID),
			slog.String("role", string(session.Role)),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSessionFromContext retrieves the session stored by SessionMiddleware.
func GetSessionFromContext(c *gin.Context) (domain.Session, bool) {
	return SessionFromCtx(c.Request.Context())
}

// SessionFromCtx is GetSessionFromContext for a plain context.Context.
func SessionFromCtx(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(domain.Session)
	return session, ok
}
