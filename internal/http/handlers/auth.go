package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/internal/http/middleware"
)

func (h *Handler) principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		h.RespondDomainError(c, domain.UnauthorizedError{Msg: "Not authenticated"})
	}
	return p, ok
}

// POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var in models.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.auth(c).Login(c.Request.Context(), in)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/admin/me
func (h *Handler) Me(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	admin, err := h.Store.Admins.GetByID(c.Request.Context(), int64(p.AdminID))
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

// POST /api/admin/register
func (h *Handler) Register(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var in models.RegisterAdminInput
	if !BindJSONOrError(c, &in) {
		return
	}
	admin, err := h.auth(c).Register(c.Request.Context(), p, in)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// GET /api/admin/users
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.auth(c).ListAdmins(c.Request.Context())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

// DELETE /api/admin/users/:id
func (h *Handler) DeleteAdmin(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	if err := h.auth(c).DeleteAdmin(c.Request.Context(), p, id); err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
