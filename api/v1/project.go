package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/services"
)

// ProjectController handles the project admin endpoints
type ProjectController struct {
	content *services.ContentService
}

// NewProjectController creates a new project API controller
func NewProjectController(content *services.ContentService) *ProjectController {
	return &ProjectController{content: content}
}

// RegisterRoutes registers project routes
func (pc *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", pc.ListProjects)
		projects.POST("", pc.CreateProject)
		projects.GET("/:id", pc.GetProject)
		projects.PUT("/:id", pc.UpdateProject)
		projects.DELETE("/:id", pc.DeleteProject)
	}
}

// ListProjects godoc
// @Summary List every project, drafts included
// @Tags projects
// @Produce json
// @Success 200 {array} dto.EntryResponse
// @Router /projects [get]
func (pc *ProjectController) ListProjects(c *gin.Context) {
	projects, err := pc.content.ListProjects(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, "retrieve projects", err)
		return
	}

	response := make([]dto.EntryResponse, 0, len(projects))
	for _, project := range projects {
		response = append(response, dto.NewEntryResponse(project.Entry))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   response,
	})
}

// GetProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.EntryResponse
// @Router /projects/{id} [get]
func (pc *ProjectController) GetProject(c *gin.Context) {
	project, err := pc.content.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "retrieve project", err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   dto.NewEntryResponse(project.Entry),
	})
}

// CreateProject godoc
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.EntryRequest true "Project Data"
// @Success 201 {object} dto.EntryResponse
// @Router /projects [post]
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	project, err := pc.content.CreateProject(c.Request.Context(), req.Entry())
	if err != nil {
		respondServiceError(c, "create project", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   dto.NewEntryResponse(project.Entry),
	})
}

// UpdateProject godoc
// @Summary Update an existing project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.EntryRequest true "Project Data"
// @Success 200 {object} dto.EntryResponse
// @Router /projects/{id} [put]
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	project, err := pc.content.UpdateProject(c.Request.Context(), c.Param("id"), req.Entry())
	if err != nil {
		respondServiceError(c, "update project", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   dto.NewEntryResponse(project.Entry),
	})
}

// DeleteProject godoc
// @Summary Delete a project and its comments
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Router /projects/{id} [delete]
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	if err := pc.content.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "delete project", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}
