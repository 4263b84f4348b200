package controllers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/models"
)

// Page carries what the shared layout needs
type Page struct {
	Title    string
	Identity *dto.Identity
}

// ProjectPage is the render model of /projects/:slug. A nil Project renders
// the unknown project state.
type ProjectPage struct {
	Page
	Slug     string
	Project  *models.Project
	Comments []models.Comment
	CanEdit  bool
	HTML     template.HTML
	LoginURL string
}

// ProjectEditPage is the render model of /projects/:slug/edit
type ProjectEditPage struct {
	Page
	Project *models.Project
	Form    dto.EntryRequest
	Error   string
}

// PostPage is the render model of /blog/:slug
type PostPage struct {
	Page
	Slug string
	Post *models.Post
	HTML template.HTML
}

// ListPage is the render model of the index and list pages
type ListPage struct {
	Page
	Projects []models.Project
	Posts    []models.Post
}

// LoginPage is the render model of /login
type LoginPage struct {
	Page
	ReturnTo string
}

// ErrorPage is the render model of every error state
type ErrorPage struct {
	Page
	Message string
}

func renderError(c *gin.Context, identity *dto.Identity, status int, err error) {
	title := http.StatusText(status)
	message := "Something went wrong. Please try again later."
	switch status {
	case http.StatusForbidden:
		message = "You are not allowed to do that."
	case http.StatusNotFound:
		message = "This page does not exist."
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.HTML(status, "error.html", ErrorPage{
		Page:    Page{Title: title, Identity: identity},
		Message: message,
	})
}

// loginURL sends the visitor to the login page and back to returnTo afterwards
func loginURL(returnTo string) string {
	return "/login?returnTo=" + url.QueryEscape(returnTo)
}

func projectPath(slug string) string {
	return "/projects/" + url.PathEscape(slug)
}

// safeReturnTo only allows local absolute paths
func safeReturnTo(returnTo string) string {
	if len(returnTo) == 0 || returnTo[0] != '/' || (len(returnTo) > 1 && (returnTo[1] == '/' || returnTo[1] == '\\')) {
		return "/"
	}
	return returnTo
}
