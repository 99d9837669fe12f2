package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/auth"
	"github.com/ryoptimus/DevStorm-backend/internal/constants"
	apierrors "github.com/ryoptimus/DevStorm-backend/internal/errors"
)

// RequireAuth resolves the caller from the access-token cookie and rejects
// revoked or invalid tokens. Handlers downstream trust the username it
// stores in the context.
func RequireAuth(secret string, blocklist *auth.Blocklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(constants.AccessTokenCookie)
		if err != nil || tokenString == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenString, secret)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if blocklist != nil {
			revoked, err := blocklist.Contains(c.Request.Context(), claims.ID)
			if err != nil {
				apierrors.InternalError(c, "Failed to verify token")
				c.Abort()
				return
			}
			if revoked {
				apierrors.Unauthorized(c, "Token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Next()
	}
}

// GetUsername retrieves the authenticated caller from context
func GetUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
