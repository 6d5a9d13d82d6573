package middlewares

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catering-boq/utils"
)

// RequireRole lets the request through only when the authenticated role is one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextRole)
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role, _ := userRole.(string)
		if !slices.Contains(roles, role) {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", roles[0]))
			c.Abort()
			return
		}

		c.Next()
	}
}
