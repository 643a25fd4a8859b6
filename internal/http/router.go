package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"househunters/internal/domain"
	h "househunters/internal/http/handlers"
	"househunters/internal/http/middleware"
)

// Body limits. Upload routes get room for a batch of images.
const (
	jsonBodyLimit   = 1 << 20
	maxBatchUploads = 20
)

// RouterDeps holds everything NewRouter wires into the engine.
type RouterDeps struct {
	Handler       *h.Handler
	Log           logrus.FieldLogger
	CORSOrigins   []string
	UploadDir     string
	UploadURL     string
	MaxUploadSize int64
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

func NewRouter(deps RouterDeps) *gin.Engine {
	hd := deps.Handler

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil && deps.Log != nil {
		deps.Log.WithError(err).Warn("failed to set trusted proxies")
	}
	r.Use(
		middleware.RequestID(deps.Log),
		middleware.Logger(deps.Log),
		gin.Recovery(),
		middleware.SecurityHeaders(),
		cors.New(corsConfig(deps.CORSOrigins)),
		middleware.Prometheus(),
	)
	r.NoRoute(hd.NotFound)

	r.GET("/", hd.Root)
	r.GET("/health", hd.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if deps.UploadURL != "" && deps.UploadDir != "" {
		r.Static(deps.UploadURL, deps.UploadDir)
	}

	api := r.Group("/api")
	{
		api.GET("/info", hd.Info)
		api.GET("/properties", hd.ListProperties)
		api.GET("/properties/featured/list", hd.FeaturedProperties)
		api.GET("/properties/trending/list", hd.TrendingProperties)
		api.GET("/properties/:id", hd.GetProperty)
		api.GET("/properties/:id/brochure", hd.PropertyBrochure)
		api.GET("/neighborhoods", hd.Neighborhoods)
		api.GET("/amenities", hd.ListAmenities)
	}

	admin := api.Group("/admin")
	admin.POST("/login", middleware.MaxBodySize(jsonBodyLimit), hd.Login)

	authed := admin.Group("", middleware.RequireAdmin(hd.Authenticator(), deps.Log))
	managers := middleware.RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin)

	body := authed.Group("", middleware.MaxBodySize(jsonBodyLimit))
	{
		body.GET("/me", hd.Me)
		body.POST("/register", hd.Register)
		body.GET("/users", managers, hd.ListAdmins)
		body.DELETE("/users/:id", hd.DeleteAdmin)

		body.POST("/properties", hd.CreateProperty)
		body.PUT("/properties/:id", hd.UpdateProperty)
		body.DELETE("/properties/:id", managers, hd.DeleteProperty)
		body.GET("/dashboard/stats", hd.DashboardStats)

		body.POST("/amenities", hd.CreateAmenity)
		body.PUT("/amenities/:id", hd.UpdateAmenity)
		body.DELETE("/amenities/:id", managers, hd.DeleteAmenity)
	}

	uploadLimit := deps.MaxUploadSize*maxBatchUploads + jsonBodyLimit
	upload := authed.Group("/upload", middleware.MaxBodySize(uploadLimit))
	{
		upload.POST("/property-image/:id", hd.UploadImage)
		upload.POST("/property-images/:id", hd.UploadImages)
		upload.DELETE("/property-image/:id", hd.DeleteImage)
		upload.PUT("/property-image/:id/set-primary", hd.SetPrimaryImage)
	}

	return r
}

// NewServer applies the listener timeouts used in every environment.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
