package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/http/httputil"
)

const (
	AdminIDKey   = "adminID"
	UserRoleKey  = "userRole"
	principalKey = "principal"
)

// Authenticator resolves a bearer token to an admin account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Admin, error)
}

// ExtractBearerToken returns the token of an "Authorization: Bearer" header.
func ExtractBearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	httputil.RespondError(c, http.StatusUnauthorized, "unauthorized", detail)
}

// RequireAdmin authenticates the bearer token and stores the principal on
// the context for RequireRoles and the handlers.
func RequireAdmin(auth Authenticator, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearerToken(c)
		if token == "" {
			unauthorized(c, "Not authenticated")
			return
		}
		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !domain.IsUnauthorized(err) {
				if log != nil {
					log.WithError(err).WithField("request_id", GetRequestID(c)).Error("authenticate")
				}
				httputil.RespondError(c, http.StatusInternalServerError, "internal_error", "Internal server error")
				return
			}
			unauthorized(c, err.Error())
			return
		}

		c.Set(AdminIDKey, admin.ID)
		c.Set(UserRoleKey, string(admin.Role))
		c.Set(principalKey, domain.Principal{
			AdminID:  domain.ID(admin.ID),
			Username: admin.Username,
			Role:     admin.Role,
		})
		c.Next()
	}
}

// PrincipalFrom returns the authenticated admin set by RequireAdmin.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
