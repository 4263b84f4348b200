package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/mmatt-net/site/api/v1"
	"github.com/mmatt-net/site/config"
	"github.com/mmatt-net/site/controllers"
	"github.com/mmatt-net/site/middleware"
	"github.com/mmatt-net/site/services"
	"github.com/mmatt-net/site/views"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Dependencies are the long-lived collaborators shared by every handler
type Dependencies struct {
	Content      *services.ContentService
	Posts        *services.PostService
	Auth         *services.Authenticator
	Provider     services.OAuthProvider
	Policy       services.Policy
	Markdown     *services.MarkdownRenderer
	CookieSecure bool
	CorsOrigins  []string
}

// NewDependencies builds the services on top of one shared database handle
func NewDependencies(db *gorm.DB, cfg config.Config) (*Dependencies, error) {
	auth, err := services.NewAuthenticator(db, cfg.SessionSecret)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Content:      services.NewContentService(db),
		Posts:        services.NewPostService(db),
		Auth:         auth,
		Provider:     services.NewTwitterProvider(cfg.TwitterClientID, cfg.TwitterClientSecret, cfg.PublicURL),
		Policy:       services.NewPolicy(cfg.AdminUserIDs),
		Markdown:     services.NewMarkdownRenderer(),
		CookieSecure: cfg.CookieSecure,
		CorsOrigins:  cfg.CorsAllowedOrigins,
	}, nil
}

// SetupRouter wires the pages, the JSON API and the metrics endpoint
func SetupRouter(deps *Dependencies) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS configuration
	router.Use(cors.New(corsConfig(deps.CorsOrigins)))

	templates, err := views.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(templates)

	// Pages
	controllers.NewPageController(deps.Content, deps.Posts, deps.Auth).RegisterRoutes(router)
	controllers.NewProjectController(deps.Content, deps.Auth, deps.Policy, deps.Markdown).RegisterRoutes(router)
	controllers.NewPostController(deps.Posts, deps.Auth, deps.Policy, deps.Markdown).RegisterRoutes(router)
	controllers.NewAuthController(deps.Auth, deps.Provider, deps.CookieSecure).RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API
	api := router.Group("/api/v1")
	v1.RegisterRoutes(api, deps.Content, deps.Posts, deps.Auth, deps.Policy, deps.CookieSecure)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
