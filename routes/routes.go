package routes

import (
	"net/http"
	"time"

	"musa/handlers"
	"musa/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSpotRoutes registers discovery, CRUD and moderation endpoints.
func RegisterSpotRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	spots := api.Group("/spots")
	{
		// Anonymous callers only see approved spots.
		public := spots.Group("")
		public.Use(middleware.OptionalJWTAuthMiddleware(hb.JWTSecret, hb.Users))
		public.GET("", hb.Spot.Search)
		public.GET("/nearby", hb.Spot.Nearby)
		public.GET("/discover", hb.Spot.Discover)
		public.GET("/:id", hb.Spot.Get)

		protected := spots.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.JWTSecret, hb.Users))
		protected.POST("", hb.Spot.Create)
		protected.PUT("/:id", hb.Spot.Update)
		protected.DELETE("/:id", hb.Spot.Delete)
		protected.POST("/:id/images", hb.Spot.UploadImage)
		protected.PUT("/:id/approve", middleware.RequireAdmin(), hb.Spot.Approve)
	}
}

// RegisterEventRoutes registers the external event search.
func RegisterEventRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/events", hb.Events.List)
}

// RegisterUGCRoutes registers review and comment endpoints.
func RegisterUGCRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	ugc := api.Group("/ugc")
	{
		ugc.Use(middleware.JWTAuthMiddleware(hb.JWTSecret, hb.Users))
		ugc.POST("", hb.UGC.Create)
		ugc.GET("/user", hb.UGC.ListMine)
	}
}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", hb.Auth.Register)
		auth.POST("/login", hb.Auth.Login)
		auth.GET("/verify", hb.Auth.Verify)
		auth.GET("/verify-email/:token", hb.Auth.VerifyEmail)
		auth.POST("/forgot-password", hb.Auth.ForgotPassword)
		auth.POST("/reset-password/:token", hb.Auth.ResetPassword)

		// Protected routes (Require Authentication)
		profile := auth.Group("/profile")
		profile.Use(middleware.JWTAuthMiddleware(hb.JWTSecret, hb.Users))
		profile.GET("", hb.Auth.GetProfile)
		profile.PUT("", hb.Auth.UpdateProfile)
	}
}

// RegisterPlacesRoutes registers place autocomplete.
func RegisterPlacesRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/places/autocomplete", hb.Places.Autocomplete)
}

// RegisterHealthRoutes registers health and metrics endpoints.
func RegisterHealthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/health", hb.Health.Health)
	api.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	api := r.Group("/api")
	if hb.Geolocator != nil {
		api.Use(middleware.GeolocationMiddleware(hb.Geolocator))
	}

	RegisterSpotRoutes(api, hb)
	RegisterEventRoutes(api, hb)
	RegisterUGCRoutes(api, hb)
	RegisterAuthRoutes(api, hb)
	RegisterPlacesRoutes(api, hb)
	RegisterHealthRoutes(api, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})
}
