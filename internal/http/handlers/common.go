package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"househunters/internal/domain"
	"househunters/internal/http/httputil"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		httputil.RespondError(c, http.StatusBadRequest, "validation_error", "Request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large")
			return false
		}
		httputil.RespondError(c, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Field: name, Msg: "must be a positive integer", Err: err}
	}
	return id, nil
}

func parseLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.ValidationError{Field: "limit", Msg: "must be a positive integer", Err: err}
	}
	return n, nil
}

func notFoundRoute(path string) error {
	return domain.NotFoundError{Resource: "route " + path}
}
