package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gogols/internal/container"
	"github.com/joshua-takyi/gogols/internal/handlers"
	"github.com/joshua-takyi/gogols/internal/middleware"
	"github.com/joshua-takyi/gogols/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	cfg := container.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "gogols-api",
			})
		})

		v1.GET("/catalog", handlers.Catalog())

		saltCave := v1.Group("/salt-cave")
		{
			saltCave.GET("/calendar", handlers.Calendar(models.ResourceSaltCave, container.BookingService))
			saltCave.GET("/days/:date", handlers.DayAvailability(container.BookingService))
			saltCave.POST("/reservations/preview", handlers.PreviewReservation(models.ResourceSaltCave, container.BookingService))
			saltCave.POST("/reservations", handlers.CreateReservation(models.ResourceSaltCave, container.BookingService))
		}

		motel := v1.Group("/motel")
		{
			motel.GET("/calendar", handlers.Calendar(models.ResourceMotel, container.BookingService))
			motel.POST("/reservations/preview", handlers.PreviewReservation(models.ResourceMotel, container.BookingService))
			motel.POST("/reservations", handlers.CreateReservation(models.ResourceMotel, container.BookingService))
		}
	}

	secure := cfg.IsProduction()
	limiter := middleware.NewIPRateLimiter(rate.Limit(float64(cfg.LoginRatePerMinute)/60), cfg.LoginRatePerMinute)

	admin := v1.Group("/admin")
	admin.POST("/login", middleware.LoginRateLimit(limiter), handlers.Login(container.AuthService, secure))

	protected := admin.Group("/")
	protected.Use(middleware.AdminAuth(container.AuthService, container.Logger))
	{
		protected.POST("/logout", handlers.Logout(container.AuthService, secure))
		protected.GET("/me", handlers.Me())
		protected.GET("/stats", handlers.Stats(container.ContentService))
		protected.GET("/audit", middleware.RequireSuperAdmin(), handlers.ListAudit(container.AdminService))

		reservations := protected.Group("/reservations")
		{
			reservations.GET("/:resource", handlers.ListReservations(container.AdminService))
			reservations.PATCH("/:resource/:id/status", handlers.ChangeReservationStatus(container.AdminService))
			reservations.DELETE("/:resource/:id", handlers.DeleteReservation(container.AdminService))
		}

		protected.GET("/content", handlers.ListContent(container.ContentService))
		protected.PATCH("/content/:id", handlers.UpdateContent(container.ContentService))

		protected.GET("/images", handlers.ListImages(container.ContentService))
		protected.POST("/images", handlers.UploadImage(container.ContentService))
		protected.PATCH("/images/:id", handlers.SetImageActive(container.ContentService))
	}

	return r
}
