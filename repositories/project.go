package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/mmatt-net/site/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindAll retrieves projects newest first, optionally including drafts
func (r *ProjectRepository) FindAll(ctx context.Context, includeDrafts bool) ([]models.Project, error) {
	projects := []models.Project{}
	q := r.db.WithContext(ctx).Order("created_at desc")
	if !includeDrafts {
		q = q.Where("status = ?", models.StatusPublished)
	}
	err := q.Find(&projects).Error
	return projects, err
}

// FindByID retrieves a project by its ID. A missing project is (nil, nil).
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	// ids are uuid columns; anything else cannot match and would be a
	// syntax error on postgres
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find project by id")
	}
	return &project, nil
}

// FindBySlug retrieves the first project with the given slug. A missing
// project is (nil, nil).
func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("created_at asc").Order("id asc").
		Take(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find project by slug")
	}
	return &project, nil
}

// SlugTaken reports whether another project already uses slug
func (r *ProjectRepository) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Project{}).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(ctx context.Context, project models.Project) (models.Project, error) {
	err := r.db.WithContext(ctx).Create(&project).Error
	return project, err
}

// Update modifies an existing project
func (r *ProjectRepository) Update(ctx context.Context, project models.Project) error {
	return r.db.WithContext(ctx).Save(&project).Error
}

// Delete removes a project together with its comments
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}
