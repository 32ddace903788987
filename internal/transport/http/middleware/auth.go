package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	ctxlog "github.com/ErlanBelekov/task-tracker/internal/log"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// TokenAuthorizer resolves an opaque bearer key to its owner.
type TokenAuthorizer interface {
	Authorize(ctx context.Context, key string) (*domain.User, error)
}

// Auth resolves the Authorization header to a user and sets "userID" in the
// gin context. Both "Bearer <key>" and "Token <key>" are accepted.
func Auth(authz TokenAuthorizer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := bearerKey(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		user, err := authz.Authorize(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
				return
			}
			logger.ErrorContext(c.Request.Context(), "authorize token", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set("userID", user.ID)
		c.Request = c.Request.WithContext(ctxlog.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

func bearerKey(header string) (string, bool) {
	scheme, key, found := strings.Cut(header, " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	key = strings.TrimSpace(key)
	return key, key != ""
}
