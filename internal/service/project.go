package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/repository"
	"github.com/Molmash/molmash/internal/storage"
	apperrors "github.com/Molmash/molmash/pkg/errors"
	"github.com/Molmash/molmash/pkg/pagination"
)

// ProjectService implements the business logic for projects.
type ProjectService struct {
	repo    repository.ProjectRepository
	storage storage.Storage
	logger  *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, store storage.Storage, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		repo:    repo,
		storage: store,
		logger:  logger,
	}
}

// CreateProjectInput holds the parameters for creating a project.
type CreateProjectInput struct {
	Title string
	Text  string
	Image *ImageUpload
}

// UpdateProjectInput holds the parameters for updating a project. Nil
// fields are left unchanged (partial update).
type UpdateProjectInput struct {
	Title *string
	Text  *string
	Image *ImageUpload
}

// Create stores a new project, saving the uploaded image if present.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("Введите заголовок")
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Image != nil {
		path, err := s.saveImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		project.Image = &path
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.InfoContext(ctx, "project created",
		slog.String("project_id", project.ID),
		slog.String("title", project.Title),
	)

	return project, nil
}

// Get retrieves a project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// List returns a page of projects.
func (s *ProjectService) List(ctx context.Context, filter repository.ContentFilter, params pagination.Params) (pagination.Result[domain.Project], error) {
	projects, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Result[domain.Project]{}, fmt.Errorf("list projects: %w", err)
	}
	return pagination.NewResult(projects, total, params), nil
}

// Update applies a full or partial update to a project.
func (s *ProjectService) Update(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("Введите заголовок")
		}
		project.Title = *input.Title
	}
	if input.Text != nil {
		project.Text = *input.Text
	}

	if input.Image != nil {
		path, err := s.saveImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		if project.Image != nil {
			s.removeImage(ctx, *project.Image)
		}
		project.Image = &path
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.InfoContext(ctx, "project updated",
		slog.String("project_id", project.ID),
	)

	return project, nil
}

// Delete removes a project and its stored image.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get project for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if project.Image != nil {
		s.removeImage(ctx, *project.Image)
	}

	s.logger.InfoContext(ctx, "project deleted",
		slog.String("project_id", id),
	)

	return nil
}

func (s *ProjectService) saveImage(ctx context.Context, upload *ImageUpload) (string, error) {
	path, err := s.storage.Save(ctx, upload.Filename, upload.Reader)
	if err != nil {
		return "", fmt.Errorf("save project image: %w", err)
	}
	return path, nil
}

func (s *ProjectService) removeImage(ctx context.Context, path string) {
	if err := s.storage.Delete(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "failed to remove project image",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
