package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/mmatt-net/site/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostRepository handles database operations for blog posts
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) FindAll(ctx context.Context, includeDrafts bool) ([]models.Post, error) {
	posts := []models.Post{}
	q := r.db.WithContext(ctx).Order("created_at desc")
	if !includeDrafts {
		q = q.Where("status = ?", models.StatusPublished)
	}
	err := q.Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	// ids are uuid columns; anything else cannot match and would be a
	// syntax error on postgres
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var post models.Post
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find post by id")
	}
	return &post, nil
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("created_at asc").Order("id asc").
		Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find post by slug")
	}
	return &post, nil
}

func (r *PostRepository) SlugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) Create(ctx context.Context, post models.Post) (models.Post, error) {
	err := r.db.WithContext(ctx).Create(&post).Error
	return post, err
}

func (r *PostRepository) Update(ctx context.Context, post models.Post) error {
	return r.db.WithContext(ctx).Save(&post).Error
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}
