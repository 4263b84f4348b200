package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/services"
)

const latestCount = 5

// PageController serves the home page and the static pages
type PageController struct {
	content *services.ContentService
	posts   *services.PostService
	auth    *services.Authenticator
}

func NewPageController(content *services.ContentService, posts *services.PostService, auth *services.Authenticator) *PageController {
	return &PageController{
		content: content,
		posts:   posts,
		auth:    auth,
	}
}

func (pc *PageController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", pc.Index)
	router.GET("/devices", pc.Devices)
}

// Index lists the latest published projects and posts
func (pc *PageController) Index(c *gin.Context) {
	identity, err := pc.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}

	projects, err := pc.content.ListProjects(c.Request.Context(), false)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}
	posts, err := pc.posts.ListPosts(c.Request.Context(), false)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	if len(projects) > latestCount {
		projects = projects[:latestCount]
	}
	if len(posts) > latestCount {
		posts = posts[:latestCount]
	}

	c.HTML(http.StatusOK, "index.html", ListPage{
		Page:     Page{Title: "home", Identity: identity},
		Projects: projects,
		Posts:    posts,
	})
}

func (pc *PageController) Devices(c *gin.Context) {
	identity, err := pc.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "devices.html", Page{Title: "/devices", Identity: identity})
}
