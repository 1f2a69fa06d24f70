package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/utils"
)

// RequireRole denies the request before any handler runs when the principal's
// role does not match. Denied requests never reach the database.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role, ok := roleValue.(models.Role)
		if !ok || !role.Valid() {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("unknown role"))
			c.Abort()
			return
		}

		switch required {
		case models.RoleAdmin:
			if role != models.RoleAdmin {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
				c.Abort()
				return
			}
		case models.RoleUser:
			if role != models.RoleUser {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("user access required"))
				c.Abort()
				return
			}
		default:
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("unknown role requirement"))
			c.Abort()
			return
		}

		c.Next()
	}
}
