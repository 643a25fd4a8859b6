package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"househunters/internal/domain"
	"househunters/internal/http/httputil"
	"househunters/internal/http/middleware"
)

// RespondDomainError maps domain errors to HTTP responses.
func (h *Handler) RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		httputil.RespondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsUnauthorized(err):
		c.Header("WWW-Authenticate", "Bearer")
		httputil.RespondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsForbidden(err):
		httputil.RespondError(c, http.StatusForbidden, "forbidden", err.Error())
	case domain.IsNotFound(err):
		httputil.RespondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		httputil.RespondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		h.logError(c, err)
		detail := "Internal server error"
		var ie domain.InternalError
		if errors.As(err, &ie) && ie.Msg != "" {
			detail = ie.Msg
		}
		httputil.RespondError(c, http.StatusInternalServerError, "internal_error", detail)
	}
}

func (h *Handler) logError(c *gin.Context, err error) {
	if h.Log == nil {
		return
	}
	h.Log.WithError(err).WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"path":       c.FullPath(),
	}).Error("request failed")
}
