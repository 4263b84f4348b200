package services

import (
	"context"
	"strings"

	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/models"
	"github.com/mmatt-net/site/monitoring"
	"github.com/mmatt-net/site/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ContentService is the only way page handlers reach projects and comments.
// It does no authorization; callers check the policy first.
type ContentService struct {
	projectRepo *repositories.ProjectRepository
	commentRepo *repositories.CommentRepository
}

// NewContentService creates a new content service on top of db
func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{
		projectRepo: repositories.NewProjectRepository(db),
		commentRepo: repositories.NewCommentRepository(db),
	}
}

// GetProjectBySlug returns the project with slug, or nil when there is none
func (s *ContentService) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return s.projectRepo.FindBySlug(ctx, slug)
}

// GetProjectByID returns the project with id, or nil when there is none
func (s *ContentService) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

// ListProjects returns projects newest first
func (s *ContentService) ListProjects(ctx context.Context, includeDrafts bool) ([]models.Project, error) {
	return s.projectRepo.FindAll(ctx, includeDrafts)
}

// GetCommentsByParentID returns every comment of a project, oldest first
func (s *ContentService) GetCommentsByParentID(ctx context.Context, parentPostID string) ([]models.Comment, error) {
	comments, err := s.commentRepo.FindByParentID(ctx, parentPostID)
	if err != nil {
		return nil, errors.Wrap(err, "get comments")
	}
	return comments, nil
}

// CreateComment stores a new comment with its content exactly as submitted.
// Blank content fails with ErrValidation, a parent that vanished in the
// meantime with ErrNotFound.
func (s *ContentService) CreateComment(ctx context.Context, req dto.CreateCommentRequest) (models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return models.Comment{}, errors.Wrap(ErrValidation, "comment content is empty")
	}
	if req.UserID == "" {
		return models.Comment{}, errors.Wrap(ErrValidation, "comment has no author")
	}

	parent, err := s.projectRepo.FindByID(ctx, req.ParentPostID)
	if err != nil {
		return models.Comment{}, err
	}
	if parent == nil {
		return models.Comment{}, errors.Wrapf(ErrNotFound, "project %s", req.ParentPostID)
	}

	comment, err := s.commentRepo.Create(ctx, models.Comment{
		ParentPostID: parent.ID,
		UserID:       req.UserID,
		Content:      req.Content,
	})
	if err != nil {
		return models.Comment{}, errors.Wrap(err, "create comment")
	}

	monitoring.CommentsCreated.Inc()
	return comment, nil
}

// CreateProject stores a new project
func (s *ContentService) CreateProject(ctx context.Context, entry models.Entry) (models.Project, error) {
	entry.ID = ""
	if err := normalizeEntry(&entry); err != nil {
		return models.Project{}, err
	}

	taken, err := s.projectRepo.SlugTaken(ctx, entry.Slug, "")
	if err != nil {
		return models.Project{}, err
	}
	if taken {
		return models.Project{}, errors.Wrapf(ErrDuplicateSlug, "project slug %q", entry.Slug)
	}

	project, err := s.projectRepo.Create(ctx, models.Project{Entry: entry})
	if err != nil {
		return models.Project{}, errors.Wrap(err, "create project")
	}
	return project, nil
}

// UpdateProject overwrites the editable columns of the project with id
func (s *ContentService) UpdateProject(ctx context.Context, id string, changes models.Entry) (models.Project, error) {
	existing, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if existing == nil {
		return models.Project{}, errors.Wrapf(ErrNotFound, "project %s", id)
	}

	applyChanges(&existing.Entry, changes)
	if err := normalizeEntry(&existing.Entry); err != nil {
		return models.Project{}, err
	}

	taken, err := s.projectRepo.SlugTaken(ctx, existing.Slug, existing.ID)
	if err != nil {
		return models.Project{}, err
	}
	if taken {
		return models.Project{}, errors.Wrapf(ErrDuplicateSlug, "project slug %q", existing.Slug)
	}

	if err := s.projectRepo.Update(ctx, *existing); err != nil {
		return models.Project{}, errors.Wrap(err, "update project")
	}
	return *existing, nil
}

// DeleteProject removes the project with id and its comments
func (s *ContentService) DeleteProject(ctx context.Context, id string) error {
	existing, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.Wrapf(ErrNotFound, "project %s", id)
	}
	return s.projectRepo.Delete(ctx, id)
}
