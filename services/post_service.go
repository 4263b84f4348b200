package services

import (
	"context"

	"github.com/mmatt-net/site/models"
	"github.com/mmatt-net/site/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo *repositories.PostRepository
}

// NewPostService creates a new post service instance
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{postRepo: repositories.NewPostRepository(db)}
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.postRepo.FindBySlug(ctx, slug)
}

func (s *PostService) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, includeDrafts bool) ([]models.Post, error) {
	return s.postRepo.FindAll(ctx, includeDrafts)
}

func (s *PostService) CreatePost(ctx context.Context, entry models.Entry) (models.Post, error) {
	entry.ID = ""
	if err := normalizeEntry(&entry); err != nil {
		return models.Post{}, err
	}

	taken, err := s.postRepo.SlugTaken(ctx, entry.Slug, "")
	if err != nil {
		return models.Post{}, err
	}
	if taken {
		return models.Post{}, errors.Wrapf(ErrDuplicateSlug, "post slug %q", entry.Slug)
	}

	post, err := s.postRepo.Create(ctx, models.Post{Entry: entry})
	if err != nil {
		return models.Post{}, errors.Wrap(err, "create post")
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id string, changes models.Entry) (models.Post, error) {
	existing, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if existing == nil {
		return models.Post{}, errors.Wrapf(ErrNotFound, "post %s", id)
	}

	applyChanges(&existing.Entry, changes)
	if err := normalizeEntry(&existing.Entry); err != nil {
		return models.Post{}, err
	}

	taken, err := s.postRepo.SlugTaken(ctx, existing.Slug, existing.ID)
	if err != nil {
		return models.Post{}, err
	}
	if taken {
		return models.Post{}, errors.Wrapf(ErrDuplicateSlug, "post slug %q", existing.Slug)
	}

	if err := s.postRepo.Update(ctx, *existing); err != nil {
		return models.Post{}, errors.Wrap(err, "update post")
	}
	return *existing, nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	existing, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.Wrapf(ErrNotFound, "post %s", id)
	}
	return s.postRepo.Delete(ctx, id)
}
