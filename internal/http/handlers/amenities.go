package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"househunters/internal/domain/models"
)

// GET /api/amenities
func (h *Handler) ListAmenities(c *gin.Context) {
	out, err := h.amenities(c).List(c.Request.Context())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/amenities
func (h *Handler) CreateAmenity(c *gin.Context) {
	var in models.AmenityInput
	if !BindJSONOrError(c, &in) {
		return
	}
	a, err := h.amenities(c).Create(c.Request.Context(), in)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PUT /api/admin/amenities/:id
func (h *Handler) UpdateAmenity(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	var patch models.AmenityPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	a, err := h.amenities(c).Update(c.Request.Context(), id, patch)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/admin/amenities/:id
func (h *Handler) DeleteAmenity(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	if err := h.amenities(c).Delete(c.Request.Context(), id); err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
