package router

import (
	"github.com/gin-gonic/gin"
	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/controller"
	"github.com/veryfy/veryfy-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	storeController        *controller.StoreController
	badgeController        *controller.BadgeController
	reportController       *controller.ReportController
	adminController        *controller.AdminController
	notificationController *controller.NotificationController
	uploadController       *controller.UploadController
	wsController           *controller.WSController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	storeController *controller.StoreController,
	badgeController *controller.BadgeController,
	reportController *controller.ReportController,
	adminController *controller.AdminController,
	notificationController *controller.NotificationController,
	uploadController *controller.UploadController,
	wsController *controller.WSController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		storeController:        storeController,
		badgeController:        badgeController,
		reportController:       reportController,
		adminController:        adminController,
		notificationController: notificationController,
		uploadController:       uploadController,
		wsController:           wsController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "VERYFY API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		// Resolution is public: badge widgets on merchant sites call it
		// without credentials. /verify is the alias snippet links use.
		badges := v1.Group("/badges")
		{
			badges.GET("/resolve/:registration_number", r.badgeController.Resolve)
		}
		v1.GET("/verify/:registration_number", r.badgeController.Resolve)

		stores := v1.Group("/stores")
		stores.Use(r.authMiddleware.Authenticate())
		{
			stores.POST("", r.storeController.SubmitStore)
			stores.GET("/mine", r.storeController.GetMyStores)
			stores.GET("/:id", r.storeController.GetStore)
			stores.POST("/:id/documents", r.storeController.AttachDocuments)
			stores.GET("/:id/badges", r.storeController.GetBadges)
		}

		reports := v1.Group("/reports")
		reports.Use(r.authMiddleware.Authenticate())
		{
			reports.POST("", r.reportController.SubmitReport)
			reports.GET("/mine", r.reportController.GetMyReports)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(r.authMiddleware.Authenticate())
		{
			notifications.GET("", r.notificationController.GetNotifications)
			notifications.GET("/unread-count", r.notificationController.GetUnreadCount)
			notifications.PUT("/read-all", r.notificationController.MarkAllAsRead)
			notifications.PUT("/:id/read", r.notificationController.MarkAsRead)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presigned-url", r.uploadController.Presign)
		}

		// The auth middleware reads the token from the query string here.
		v1.GET("/ws", r.authMiddleware.Authenticate(), r.wsController.Connect)

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/dashboard", r.adminController.GetDashboard)

			admin.GET("/stores", r.adminController.ListStores)
			admin.GET("/stores/:id", r.adminController.GetStore)
			admin.PUT("/stores/:id/status", r.adminController.ReviewStore)
			admin.POST("/stores/:id/badges", r.adminController.IssueBadge)

			admin.PUT("/documents/:id/status", r.adminController.ReviewDocument)

			admin.GET("/reports", r.adminController.ListReports)
			admin.GET("/reports/export", r.adminController.ExportReports)
			admin.PUT("/reports/:id/status", r.adminController.ReviewReport)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
