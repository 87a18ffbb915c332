package router

import (
	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/handler"
	"github.com/eventra-live/eventra-admin-api/internal/middleware"
	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
)

// Handlers bundles every HTTP handler mounted by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Event         *handler.EventHandler
	Registration  *handler.RegistrationHandler
	BannerRate    *handler.BannerRateHandler
	PhotoCategory *handler.PhotoCategoryHandler
	Region        *handler.RegionHandler
	Complaint     *handler.ComplaintHandler
	Feedback      *handler.FeedbackHandler
	UPISetting    *handler.UPISettingHandler
	Dashboard     *handler.DashboardHandler
	Export        *handler.ExportHandler
	Metrics       *handler.MetricsHandler
}

// Register mounts all console routes under the API prefix. Everything but
// login, refresh, health and metrics sits behind JWT auth.
func Register(r *gin.Engine, prefix string, authSvc *service.AuthService, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), h.Auth.Logout)
		auth.GET("/me", middleware.JWT(authSvc), h.Auth.Me)
	}

	admin := api.Group("")
	admin.Use(middleware.JWT(authSvc))
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))

	events := admin.Group("/events")
	{
		events.POST("/list", h.Event.List)
		events.POST("", h.Event.Create)
		events.GET("/:id", h.Event.Get)
		events.PUT("/:id", h.Event.Update)
		events.PATCH("/:id/toggle", h.Event.ToggleActive)
		events.DELETE("/:id", h.Event.Delete)
		events.POST("/:id/banner", h.Event.UploadBanner)
		events.GET("/:id/gallery", h.Event.Gallery)
		events.POST("/:id/gallery/photos", h.Event.AddPhoto)
		events.POST("/:id/gallery/videos", h.Event.AddVideo)
		events.DELETE("/:id/gallery/photos/:photoId", h.Event.RemovePhoto)
		events.DELETE("/:id/gallery/videos/:videoId", h.Event.RemoveVideo)
	}

	registrations := admin.Group("/registrations")
	{
		registrations.POST("/list", h.Registration.List)
		registrations.GET("/:id", h.Registration.Get)
		registrations.PATCH("/:id/payment-status", h.Registration.UpdatePaymentStatus)
		registrations.DELETE("/:id", h.Registration.Delete)
	}

	bannerRates := admin.Group("/banner-rates")
	{
		bannerRates.POST("/list", h.BannerRate.List)
		bannerRates.POST("", h.BannerRate.Create)
		bannerRates.GET("/:id", h.BannerRate.Get)
		bannerRates.PUT("/:id", h.BannerRate.Update)
		bannerRates.PATCH("/:id/toggle", h.BannerRate.ToggleActive)
		bannerRates.DELETE("/:id", h.BannerRate.Delete)
	}

	photoCategories := admin.Group("/photo-categories")
	{
		photoCategories.POST("/list", h.PhotoCategory.List)
		photoCategories.POST("", h.PhotoCategory.Create)
		photoCategories.GET("/:id", h.PhotoCategory.Get)
		photoCategories.PUT("/:id", h.PhotoCategory.Update)
		photoCategories.PATCH("/:id/toggle", h.PhotoCategory.ToggleActive)
		photoCategories.DELETE("/:id", h.PhotoCategory.Delete)
	}

	regions := admin.Group("/regions")
	{
		regions.POST("/list", h.Region.List)
		regions.POST("", h.Region.Create)
		regions.GET("/:id", h.Region.Get)
		regions.PUT("/:id", h.Region.Update)
		regions.DELETE("/:id", h.Region.Delete)
	}

	complaints := admin.Group("/complaints")
	{
		complaints.POST("/list", h.Complaint.List)
		complaints.GET("/:id", h.Complaint.Get)
		complaints.PATCH("/:id/status", h.Complaint.UpdateStatus)
		complaints.DELETE("/:id", h.Complaint.Delete)
	}

	feedback := admin.Group("/feedback")
	{
		feedback.POST("/list", h.Feedback.List)
		feedback.GET("/:id", h.Feedback.Get)
		feedback.DELETE("/:id", h.Feedback.Delete)
	}

	upiSettings := admin.Group("/upi-settings")
	{
		upiSettings.POST("/list", h.UPISetting.List)
		upiSettings.POST("", h.UPISetting.Create)
		upiSettings.GET("/:id", h.UPISetting.Get)
		upiSettings.PUT("/:id", h.UPISetting.Update)
		upiSettings.POST("/:id/qr", h.UPISetting.UploadQR)
		upiSettings.PATCH("/:id/activate", h.UPISetting.Activate)
		upiSettings.PATCH("/:id/deactivate", h.UPISetting.Deactivate)
		upiSettings.DELETE("/:id", h.UPISetting.Delete)
	}

	users := admin.Group("/users")
	{
		users.POST("/list", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PATCH("/:id/toggle", h.User.ToggleActive)
		users.DELETE("/:id", h.User.Delete)
	}

	admin.GET("/dashboard/stats", h.Dashboard.Stats)
	admin.POST("/dashboard/refresh", h.Dashboard.Refresh)

	exports := admin.Group("/exports")
	{
		exports.POST("", h.Export.Create)
		exports.GET("", h.Export.List)
		exports.GET("/:id", h.Export.Get)
	}

	// Signed token carries its own auth, so download stays outside JWT.
	api.GET("/exports/download", h.Export.Download)
}
