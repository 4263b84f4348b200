package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/services"
)

// PostController serves the blog pages
type PostController struct {
	posts    *services.PostService
	auth     *services.Authenticator
	policy   services.Policy
	markdown *services.MarkdownRenderer
}

func NewPostController(posts *services.PostService, auth *services.Authenticator, policy services.Policy, markdown *services.MarkdownRenderer) *PostController {
	return &PostController{
		posts:    posts,
		auth:     auth,
		policy:   policy,
		markdown: markdown,
	}
}

func (pc *PostController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/blog", pc.List)
	router.GET("/blog/:slug", pc.Show)
}

func (pc *PostController) List(c *gin.Context) {
	identity, err := pc.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}

	posts, err := pc.posts.ListPosts(c.Request.Context(), pc.policy.IsAdmin(identity))
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	c.HTML(http.StatusOK, "blog.html", ListPage{
		Page:  Page{Title: "/blog", Identity: identity},
		Posts: posts,
	})
}

// Show renders one post; an unknown slug renders the unknown post state
func (pc *PostController) Show(c *gin.Context) {
	slug := c.Param("slug")

	identity, err := pc.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}

	post, err := pc.posts.GetPostBySlug(c.Request.Context(), slug)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	data := PostPage{
		Page: Page{Title: "unknown post", Identity: identity},
		Slug: slug,
	}
	if post == nil {
		c.HTML(http.StatusNotFound, "post.html", data)
		return
	}

	html, err := pc.markdown.Render(post.Markdown)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	data.Title = post.Title
	data.Post = post
	data.HTML = html
	c.HTML(http.StatusOK, "post.html", data)
}
