package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"househunters/internal/domain"
	"househunters/internal/http/httputil"
)

// RequireRoles lets through only principals whose role is listed. It runs
// after RequireAdmin, which sets the role on the context.
//
//	admin.DELETE("/users/:id", RequireRoles(domain.RoleSuperAdmin), h.DeleteAdmin)
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(string(r)))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		if role == "" {
			c.Header("WWW-Authenticate", "Bearer")
			httputil.RespondError(c, http.StatusUnauthorized, "unauthorized", "Not authenticated")
			return
		}
		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			httputil.RespondError(c, http.StatusForbidden, "forbidden", "Insufficient permissions")
			return
		}
		c.Next()
	}
}
