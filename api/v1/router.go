package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/middleware"
	"github.com/mmatt-net/site/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, content *services.ContentService, posts *services.PostService, auth *services.Authenticator, policy services.Policy, cookieSecure bool) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	router.Use(middleware.SessionMiddleware(auth))

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/me", GetCurrentUser)
		authGroup.POST("/logout", Logout(cookieSecure))
	}

	// Content endpoints - protected by AdminMiddleware
	admin := router.Group("")
	admin.Use(middleware.AdminMiddleware(policy))

	projectController := NewProjectController(content)
	projectController.RegisterRoutes(admin)

	postController := NewPostController(posts)
	postController.RegisterRoutes(admin)
}
