package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
	"househunters/listing"
)

// GET /api/properties
func (h *Handler) ListProperties(c *gin.Context) {
	q := c.Request.URL.Query()
	if err := listing.ValidatePaging(q); err != nil {
		h.RespondDomainError(c, domain.ValidationError{Msg: err.Error(), Err: err})
		return
	}
	criteria := listing.ParseCriteria(q)
	res, err := h.properties(c).List(c.Request.Context(), criteria)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	p, err := h.properties(c).Get(c.Request.Context(), id)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/properties/featured/list
func (h *Handler) FeaturedProperties(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	props, err := h.properties(c).Featured(c.Request.Context(), limit)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// GET /api/properties/trending/list
func (h *Handler) TrendingProperties(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	props, err := h.properties(c).Trending(c.Request.Context(), limit)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// GET /api/properties/:id/brochure returns the listing flyer (inline).
func (h *Handler) PropertyBrochure(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	pdfBytes, filename, err := h.brochures(c).Generate(c.Request.Context(), id)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/neighborhoods
func (h *Handler) Neighborhoods(c *gin.Context) {
	out, err := h.properties(c).Neighborhoods(c.Request.Context())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/properties
func (h *Handler) CreateProperty(c *gin.Context) {
	var in models.PropertyInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := h.properties(c).Create(c.Request.Context(), in)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /api/admin/properties/:id
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	var patch models.PropertyPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	p, err := h.properties(c).Update(c.Request.Context(), id, patch)
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/admin/properties/:id
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	if err := h.properties(c).Delete(c.Request.Context(), id); err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/admin/dashboard/stats
func (h *Handler) DashboardStats(c *gin.Context) {
	st, err := h.properties(c).Stats(c.Request.Context())
	if err != nil {
		h.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
