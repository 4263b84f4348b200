package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/services"
)

// PostController handles the post admin endpoints
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new post API controller
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// RegisterRoutes registers post routes
func (pc *PostController) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	{
		posts.GET("", pc.ListPosts)
		posts.POST("", pc.CreatePost)
		posts.GET("/:id", pc.GetPost)
		posts.PUT("/:id", pc.UpdatePost)
		posts.DELETE("/:id", pc.DeletePost)
	}
}

// ListPosts godoc
// @Summary List every post, drafts included
// @Tags posts
// @Produce json
// @Success 200 {array} dto.EntryResponse
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	posts, err := pc.posts.ListPosts(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, "retrieve posts", err)
		return
	}

	response := make([]dto.EntryResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, dto.NewEntryResponse(post.Entry))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   response,
	})
}

// GetPost godoc
// @Summary Get a post by ID
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.EntryResponse
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	post, err := pc.posts.GetPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "retrieve post", err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   dto.NewEntryResponse(post.Entry),
	})
}

// CreatePost godoc
// @Summary Create a new post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body dto.EntryRequest true "Post Data"
// @Success 201 {object} dto.EntryResponse
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	post, err := pc.posts.CreatePost(c.Request.Context(), req.Entry())
	if err != nil {
		respondServiceError(c, "create post", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   dto.NewEntryResponse(post.Entry),
	})
}

// UpdatePost godoc
// @Summary Update an existing post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body dto.EntryRequest true "Post Data"
// @Success 200 {object} dto.EntryResponse
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	post, err := pc.posts.UpdatePost(c.Request.Context(), c.Param("id"), req.Entry())
	if err != nil {
		respondServiceError(c, "update post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   dto.NewEntryResponse(post.Entry),
	})
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	if err := pc.posts.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "delete post", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Post deleted successfully",
	})
}
