package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":         h.App.Name,
		"version":     h.App.Version,
		"status":      "running",
		"environment": h.App.Environment,
		"description": "Property listings API for House Hunters",
	})
}

// GET /health reports database reachability. The body is served with 200
// either way so monitors can read the database field.
func (h *Handler) Health(c *gin.Context) {
	status, database := "healthy", "connected"
	if h.Store.Ping != nil {
		if err := h.Store.Ping(c.Request.Context()); err != nil {
			if h.Log != nil {
				h.Log.WithError(err).Warn("health: database ping failed")
			}
			status, database = "unhealthy", "disconnected"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      status,
		"database":    database,
		"api_version": h.App.Version,
	})
}

// GET /api/info
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app_name":    h.App.Name,
		"version":     h.App.Version,
		"environment": h.App.Environment,
		"endpoints": gin.H{
			"properties":  "/api/properties",
			"admin_login": "/api/admin/login",
			"amenities":   "/api/amenities",
			"dashboard":   "/api/admin/dashboard/stats",
		},
		"features": []string{
			"Property listings management",
			"JWT authentication",
			"Image upload",
			"Search and filtering",
			"Dashboard statistics",
			"PDF brochures",
		},
	})
}

// NotFound answers unknown routes in the standard error shape.
func (h *Handler) NotFound(c *gin.Context) {
	h.RespondDomainError(c, notFoundRoute(c.Request.URL.Path))
}
