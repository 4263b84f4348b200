package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/models"
	"github.com/mmatt-net/site/services"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ProjectController serves the project pages
type ProjectController struct {
	content  *services.ContentService
	auth     *services.Authenticator
	policy   services.Policy
	markdown *services.MarkdownRenderer
}

// NewProjectController creates a new project controller
func NewProjectController(content *services.ContentService, auth *services.Authenticator, policy services.Policy, markdown *services.MarkdownRenderer) *ProjectController {
	return &ProjectController{
		content:  content,
		auth:     auth,
		policy:   policy,
		markdown: markdown,
	}
}

// RegisterRoutes registers project page routes
func (pc *ProjectController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/projects", pc.List)
	router.GET("/projects/:slug", pc.Show)
	router.POST("/projects/:slug", pc.Comment)
	router.GET("/projects/:slug/edit", pc.Edit)
	router.POST("/projects/:slug/edit", pc.Update)
}

// List renders every published project, drafts included for admins
func (pc *ProjectController) List(c *gin.Context) {
	identity, err := pc.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}

	projects, err := pc.content.ListProjects(c.Request.Context(), pc.policy.IsAdmin(identity))
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	c.HTML(http.StatusOK, "projects.html", ListPage{
		Page:     Page{Title: "/projects", Identity: identity},
		Projects: projects,
	})
}

// Show is the loader of the project page: project and session are resolved
// concurrently, then the comments of the project are fetched
func (pc *ProjectController) Show(c *gin.Context) {
	slug := c.Param("slug")

	var (
		project  *models.Project
		identity *dto.Identity
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		project, err = pc.content.GetProjectBySlug(ctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		identity, err = pc.auth.IsAuthenticated(c.Request.WithContext(ctx))
		return err
	})
	if err := g.Wait(); err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}

	data := ProjectPage{
		Page:     Page{Title: "unknown project", Identity: identity},
		Slug:     slug,
		Comments: []models.Comment{},
		LoginURL: loginURL(projectPath(slug)),
	}
	if project == nil {
		c.HTML(http.StatusNotFound, "project.html", data)
		return
	}

	comments, err := pc.content.GetCommentsByParentID(c.Request.Context(), project.ID)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}
	html, err := pc.markdown.Render(project.Markdown)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	data.Title = project.Title
	data.Project = project
	data.Comments = comments
	data.CanEdit = pc.policy.CanEdit(identity, &project.Entry)
	data.HTML = html
	c.HTML(http.StatusOK, "project.html", data)
}

// Comment is the action of the project page. It answers with an empty
// body; the page reloads itself to show the new comment.
func (pc *ProjectController) Comment(c *gin.Context) {
	slug := c.Param("slug")

	identity, err := pc.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}
	if identity == nil {
		c.Redirect(http.StatusFound, loginURL(projectPath(slug)))
		return
	}

	var form dto.CommentForm
	if err := c.ShouldBind(&form); err != nil || strings.TrimSpace(form.Comment) == "" {
		c.Redirect(http.StatusFound, projectPath(slug))
		return
	}

	// resolve again by slug: the id seen by the loader may be stale
	project, err := pc.content.GetProjectBySlug(c.Request.Context(), slug)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}
	if project == nil {
		pc.renderUnknown(c, identity, slug)
		return
	}

	_, err = pc.content.CreateComment(c.Request.Context(), dto.CreateCommentRequest{
		ParentPostID: project.ID,
		UserID:       identity.ID,
		Content:      form.Comment,
	})
	switch {
	case errors.Is(err, services.ErrNotFound):
		pc.renderUnknown(c, identity, slug)
		return
	case errors.Is(err, services.ErrValidation):
		c.Redirect(http.StatusFound, projectPath(slug))
		return
	case err != nil:
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Edit renders the edit form for admins
func (pc *ProjectController) Edit(c *gin.Context) {
	identity, project, ok := pc.loadEditable(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "project_edit.html", ProjectEditPage{
		Page:    Page{Title: "edit " + project.Title, Identity: identity},
		Project: project,
		Form: dto.EntryRequest{
			Slug:     project.Slug,
			Title:    project.Title,
			Category: project.Category,
			ImageURL: project.ImageURL,
			Markdown: project.Markdown,
			Status:   string(project.Status),
		},
	})
}

// Update stores the edit form and redirects to the (possibly renamed) project
func (pc *ProjectController) Update(c *gin.Context) {
	identity, project, ok := pc.loadEditable(c)
	if !ok {
		return
	}

	page := ProjectEditPage{
		Page:    Page{Title: "edit " + project.Title, Identity: identity},
		Project: project,
	}

	if err := c.ShouldBind(&page.Form); err != nil {
		page.Error = "Title is required."
		c.HTML(http.StatusBadRequest, "project_edit.html", page)
		return
	}

	updated, err := pc.content.UpdateProject(c.Request.Context(), project.ID, page.Form.Entry())
	switch {
	case errors.Is(err, services.ErrDuplicateSlug):
		page.Error = "Another project already uses this slug."
		c.HTML(http.StatusConflict, "project_edit.html", page)
		return
	case errors.Is(err, services.ErrValidation):
		page.Error = err.Error()
		c.HTML(http.StatusBadRequest, "project_edit.html", page)
		return
	case errors.Is(err, services.ErrNotFound):
		pc.renderUnknown(c, identity, project.Slug)
		return
	case err != nil:
		renderError(c, identity, http.StatusInternalServerError, err)
		return
	}

	c.Redirect(http.StatusFound, projectPath(updated.Slug))
}

// loadEditable resolves the visitor and the project of the request and
// checks the edit policy. It writes the response itself when it returns false.
func (pc *ProjectController) loadEditable(c *gin.Context) (*dto.Identity, *models.Project, bool) {
	slug := c.Param("slug")

	identity, err := pc.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	if identity == nil {
		c.Redirect(http.StatusFound, loginURL(c.Request.URL.Path))
		return nil, nil, false
	}

	project, err := pc.content.GetProjectBySlug(c.Request.Context(), slug)
	if err != nil {
		renderError(c, identity, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	if project == nil {
		pc.renderUnknown(c, identity, slug)
		return nil, nil, false
	}
	if !pc.policy.CanEdit(identity, &project.Entry) {
		renderError(c, identity, http.StatusForbidden, nil)
		return nil, nil, false
	}
	return identity, project, true
}

func (pc *ProjectController) renderUnknown(c *gin.Context, identity *dto.Identity, slug string) {
	c.HTML(http.StatusNotFound, "project.html", ProjectPage{
		Page:     Page{Title: "unknown project", Identity: identity},
		Slug:     slug,
		Comments: []models.Comment{},
		LoginURL: loginURL(projectPath(slug)),
	})
}
