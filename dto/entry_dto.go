package dto

import (
	"time"

	"github.com/mmatt-net/site/models"
)

// EntryRequest is the payload for creating or updating a project or post.
// Slug is derived from the title when left blank.
type EntryRequest struct {
	Slug     string `json:"slug" form:"slug"`
	Title    string `json:"title" form:"title" binding:"required"`
	Category string `json:"category" form:"category"`
	ImageURL string `json:"imageUrl" form:"imageUrl"`
	Markdown string `json:"markdown" form:"markdown"`
	Status   string `json:"status" form:"status"`
}

// Entry maps the request onto the shared model columns
func (r EntryRequest) Entry() models.Entry {
	return models.Entry{
		Slug:     r.Slug,
		Title:    r.Title,
		Category: r.Category,
		ImageURL: r.ImageURL,
		Markdown: r.Markdown,
		Status:   models.Status(r.Status),
	}
}

// EntryResponse represents the standard response format for a project or post
type EntryResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl"`
	Markdown  string    `json:"markdown"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewEntryResponse builds the response from a stored entry
func NewEntryResponse(e models.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Slug:      e.Slug,
		Title:     e.Title,
		Category:  e.Category,
		ImageURL:  e.ImageURL,
		Markdown:  e.Markdown,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
