package services

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/mmatt-net/site/models"
	"github.com/pkg/errors"
)

var validate = validator.New()

// normalizeEntry trims user input, derives the slug from the title when it
// is blank and checks the result against the model's validate tags
func normalizeEntry(e *models.Entry) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Category = strings.TrimSpace(e.Category)
	e.ImageURL = strings.TrimSpace(e.ImageURL)
	if strings.TrimSpace(e.Slug) == "" {
		e.Slug = e.Title
	}
	e.Slug = slug.Make(e.Slug)
	if e.Status == "" {
		e.Status = models.StatusDraft
	}

	if err := validate.Struct(e); err != nil {
		return errors.Wrap(ErrValidation, err.Error())
	}
	return nil
}

// applyChanges copies editable columns from changes onto existing, keeping
// id and creation time. A blank slug keeps the current one.
func applyChanges(existing *models.Entry, changes models.Entry) {
	if strings.TrimSpace(changes.Slug) != "" {
		existing.Slug = changes.Slug
	}
	existing.Title = changes.Title
	existing.Category = changes.Category
	existing.ImageURL = changes.ImageURL
	existing.Markdown = changes.Markdown
	if changes.Status != "" {
		existing.Status = changes.Status
	}
}
