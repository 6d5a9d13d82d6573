package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextUserEmail = "user_email"
	ContextRole      = "role"
	ContextClaims    = "claims"
)

// AuthMiddleware requires a valid, non revoked bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header must use the Bearer scheme"))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		if claims.Email == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token carries no user"))
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *utils.CustomClaims) {
	c.Set(ContextUserEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
}

// CurrentUser returns the email and role the auth middleware stored.
func CurrentUser(c *gin.Context) (email, role string) {
	return c.GetString(ContextUserEmail), c.GetString(ContextRole)
}
