package repositories

import (
	"context"

	"github.com/mmatt-net/site/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// FindByParentID returns the comments of one project in creation order,
// with their authors loaded
func (r *CommentRepository) FindByParentID(ctx context.Context, parentID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_post_id = ?", parentID).
		Order("created_at asc").Order("id asc").
		Find(&comments).Error
	return comments, err
}

// Create inserts a comment; the author row is never written from here
func (r *CommentRepository) Create(ctx context.Context, comment models.Comment) (models.Comment, error) {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&comment).Error
	return comment, err
}
