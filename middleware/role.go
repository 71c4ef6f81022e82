package middleware

import (
	"net/http"
	"slices"

	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole lets the request through only when the authenticated role is one
// of roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if !slices.Contains(roles, role) {
			zap.L().Warn("role check failed",
				zap.String("userID", UserID(c)),
				zap.String("role", role),
				zap.Strings("required", roles))
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
