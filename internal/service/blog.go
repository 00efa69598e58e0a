package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/repository"
	"github.com/Molmash/molmash/internal/storage"
	apperrors "github.com/Molmash/molmash/pkg/errors"
	"github.com/Molmash/molmash/pkg/pagination"
)

// ImageUpload carries an uploaded image file from the HTTP layer.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// BlogService implements the business logic for blog entries.
type BlogService struct {
	repo    repository.BlogRepository
	storage storage.Storage
	logger  *slog.Logger
}

// NewBlogService creates a new blog service.
func NewBlogService(repo repository.BlogRepository, store storage.Storage, logger *slog.Logger) *BlogService {
	return &BlogService{
		repo:    repo,
		storage: store,
		logger:  logger,
	}
}

// CreateBlogInput holds the parameters for creating a blog entry.
type CreateBlogInput struct {
	Title    string
	Subject  string
	Category string
	Text     string
	Image    *ImageUpload
}

// UpdateBlogInput holds the parameters for updating a blog entry. Nil
// fields are left unchanged (partial update).
type UpdateBlogInput struct {
	Title    *string
	Subject  *string
	Category *string
	Text     *string
	Image    *ImageUpload
}

// Create stores a new blog entry, saving the uploaded image if present.
func (s *BlogService) Create(ctx context.Context, input CreateBlogInput) (*domain.Blog, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("Введите заголовок")
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Subject:   input.Subject,
		Category:  input.Category,
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Image != nil {
		path, err := s.saveImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		blog.Image = &path
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	s.logger.InfoContext(ctx, "blog created",
		slog.String("blog_id", blog.ID),
		slog.String("title", blog.Title),
	)

	return blog, nil
}

// Get retrieves a blog entry by id.
func (s *BlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return blog, nil
}

// List returns a page of blog entries.
func (s *BlogService) List(ctx context.Context, filter repository.ContentFilter, params pagination.Params) (pagination.Result[domain.Blog], error) {
	blogs, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Result[domain.Blog]{}, fmt.Errorf("list blogs: %w", err)
	}
	return pagination.NewResult(blogs, total, params), nil
}

// Update applies a full or partial update to a blog entry.
func (s *BlogService) Update(ctx context.Context, id string, input UpdateBlogInput) (*domain.Blog, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blog for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("Введите заголовок")
		}
		blog.Title = *input.Title
	}
	if input.Subject != nil {
		blog.Subject = *input.Subject
	}
	if input.Category != nil {
		blog.Category = *input.Category
	}
	if input.Text != nil {
		blog.Text = *input.Text
	}

	if input.Image != nil {
		path, err := s.saveImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		if blog.Image != nil {
			s.removeImage(ctx, *blog.Image)
		}
		blog.Image = &path
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	s.logger.InfoContext(ctx, "blog updated",
		slog.String("blog_id", blog.ID),
	)

	return blog, nil
}

// Delete removes a blog entry and its stored image.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get blog for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	if blog.Image != nil {
		s.removeImage(ctx, *blog.Image)
	}

	s.logger.InfoContext(ctx, "blog deleted",
		slog.String("blog_id", id),
	)

	return nil
}

func (s *BlogService) saveImage(ctx context.Context, upload *ImageUpload) (string, error) {
	path, err := s.storage.Save(ctx, upload.Filename, upload.Reader)
	if err != nil {
		return "", fmt.Errorf("save blog image: %w", err)
	}
	return path, nil
}

func (s *BlogService) removeImage(ctx context.Context, path string) {
	if err := s.storage.Delete(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "failed to remove blog image",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
