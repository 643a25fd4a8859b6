package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"househunters/internal/http/middleware"
	"househunters/internal/repositories"
	"househunters/internal/services"
)

// AppInfo describes the running build for / and /api/info.
type AppInfo struct {
	Name        string
	Version     string
	Environment string
}

// Handler serves every API route. Services are built per request so they
// carry the request id into their logs.
type Handler struct {
	Store    repositories.Store
	Files    services.FileStore
	Secret   []byte
	TokenTTL time.Duration
	Log      logrus.FieldLogger
	App      AppInfo
}

// Authenticator backs the bearer middleware.
func (h *Handler) Authenticator() services.AuthService {
	return services.AuthService{Admins: h.Store.Admins, Secret: h.Secret, TTL: h.TokenTTL, Log: h.Log}
}

func (h *Handler) auth(c *gin.Context) services.AuthService {
	svc := h.Authenticator()
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (h *Handler) properties(c *gin.Context) services.PropertyService {
	return services.PropertyService{
		Repo:      h.Store.Properties,
		Files:     h.Files,
		Log:       h.Log,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) amenities(c *gin.Context) services.AmenityService {
	return services.AmenityService{Repo: h.Store.Amenities, Log: h.Log, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) uploads(c *gin.Context) services.UploadService {
	return services.UploadService{
		Properties: h.Store.Properties,
		Images:     h.Store.Images,
		Files:      h.Files,
		Log:        h.Log,
		RequestID:  middleware.GetRequestID(c),
	}
}

func (h *Handler) brochures(c *gin.Context) services.BrochureService {
	return services.BrochureService{Repo: h.Store.Properties, Log: h.Log, RequestID: middleware.GetRequestID(c)}
}
