package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/dongnegage-backend/config"
	"github.com/ikkim/dongnegage-backend/internal/app/controller"
	"github.com/ikkim/dongnegage-backend/internal/middleware"
)

type Router struct {
	authController   *controller.AuthController
	storeController  *controller.StoreController
	reviewController *controller.ReviewController
	heartController  *controller.HeartController
	tagController    *controller.TagController
	uploadController *controller.UploadController
	authMiddleware   *middleware.AuthMiddleware
	config           *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	storeController *controller.StoreController,
	reviewController *controller.ReviewController,
	heartController *controller.HeartController,
	tagController *controller.TagController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:   authController,
		storeController:  storeController,
		reviewController: reviewController,
		heartController:  heartController,
		tagController:    tagController,
		uploadController: uploadController,
		authMiddleware:   authMiddleware,
		config:           cfg,
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
			"message": "DONGNEGAGE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		stores := v1.Group("/stores")
		{
			stores.GET("", r.storeController.List)
			stores.GET("/top", r.storeController.Top)
			stores.GET("/search", r.storeController.Search)
			stores.GET("/slug/:slug", r.storeController.GetBySlug)
			stores.GET("/:id", r.storeController.GetByID)
			stores.POST("", r.authMiddleware.Authenticate(), r.storeController.Create)
			stores.PUT("/:id", r.authMiddleware.Authenticate(), r.storeController.Update)
			stores.DELETE("/:id", r.authMiddleware.Authenticate(), r.storeController.Delete)

			stores.GET("/:id/reviews", r.reviewController.ListByStore)
			stores.POST("/:id/reviews", r.authMiddleware.Authenticate(), r.reviewController.Create)

			stores.POST("/:id/heart", r.authMiddleware.Authenticate(), r.heartController.Toggle)
		}

		v1.GET("/hearts", r.authMiddleware.Authenticate(), r.heartController.ListHearts)

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.ListTags)
			tags.GET("/:tag", r.tagController.StoresByTag)
		}

		upload := v1.Group("/upload")
		{
			upload.POST("/presigned-url", r.authMiddleware.Authenticate(), r.uploadController.GeneratePresignedURL)
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
