package middleware

import (
	"context"
	"net/http"
	"strings"

	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// Authenticator validates a bearer token; the user service implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// JWTAuthMiddleware rejects requests without a valid, unrevoked token and
// stores the caller's ID, role and email on the context.
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			zap.L().Debug("authentication failed", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(utils.StatusFor(err), utils.ErrorResponse{Message: "Authentication failed", Details: err.Error()})
			return
		}
		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated caller's ID.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(CtxRole)
}
