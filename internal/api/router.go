package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eventum-io/eventum/internal/api/handlers"
	"github.com/eventum-io/eventum/internal/audit"
	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/config"
	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/service"
	"github.com/eventum-io/eventum/internal/store"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *gorm.DB, recorder *audit.Recorder) *gin.Engine {
	// Set Gin mode
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware())

	stores := store.New(db)
	authenticator := auth.NewAuthenticator(stores, cfg.Auth)

	authHandler := handlers.NewAuthHandler(recorder, authenticator)
	eventHandler := handlers.NewEventHandler(recorder, service.NewEventService(db, stores))
	userEventsHandler := handlers.NewUserEventsHandler(recorder, service.NewMemberService(stores))
	adminHandler := handlers.NewAdminHandler(stores)

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", handlers.HealthCheck)
		public.POST("/auth/signin", authHandler.Signin)
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/refresh", authHandler.Refresh)
		public.GET("/events", eventHandler.ListEvents)
		public.GET("/events/:id", eventHandler.GetEvent)
	}

	// Protected routes (require authentication)
	protected := router.Group("/api/v1")
	protected.Use(authenticator.Middleware())
	{
		protected.GET("/users/me", authHandler.Me)
		protected.PUT("/users/me/password", authHandler.ChangePassword)

		// Any authenticated role may manage its own enrollments
		member := protected.Group("")
		member.Use(auth.RequireRoles(models.RoleAdmin, models.RoleUser))
		{
			member.GET("/users/me/events", userEventsHandler.ListMyEvents)
			member.POST("/users/me/events/:event_id", userEventsHandler.Enroll)
			member.DELETE("/users/me/events/:event_id", userEventsHandler.Unenroll)
		}

		// Admin-only operations
		admin := protected.Group("")
		admin.Use(auth.RequireRoles(models.RoleAdmin))
		{
			admin.POST("/auth/register/admin", authHandler.RegisterAdmin)
			admin.POST("/events", eventHandler.CreateEvent)
			admin.DELETE("/events/:id", eventHandler.DeleteEvent)
			admin.GET("/admin/users", adminHandler.ListUsers)
			admin.GET("/admin/roles", adminHandler.ListRoles)
			admin.DELETE("/admin/roles/:id", adminHandler.DeleteRole)
		}
	}

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	slog.Info("API router initialized", "mode", cfg.Server.Mode)
	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"ip", c.ClientIP(),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
