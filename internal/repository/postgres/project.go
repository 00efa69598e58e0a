package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/repository"
	"github.com/Molmash/molmash/pkg/database"
	apperrors "github.com/Molmash/molmash/pkg/errors"
	"github.com/Molmash/molmash/pkg/pagination"
)

var projectOrderColumns = map[string]bool{
	"title":      true,
	"created_at": true,
	"updated_at": true,
}

// ProjectRepository implements repository.ProjectRepository using PostgreSQL.
type ProjectRepository struct {
	db database.DBTX
}

// NewProjectRepository creates a new PostgreSQL-backed project repository.
func NewProjectRepository(db database.DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project into the database.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects (id, title, image, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Image,
		p.Text,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `
		SELECT id, title, image, text, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var p domain.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Image,
		&p.Text,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}

	return &p, nil
}

// List returns a page of projects matching the filter, plus the total count.
func (r *ProjectRepository) List(ctx context.Context, filter repository.ContentFilter, params pagination.Params) ([]domain.Project, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR text ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT id, title, image, text, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM projects
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderClause(filter.OrderBy, projectOrderColumns), argIndex, argIndex+1,
	)

	args = append(args, params.PerPage, params.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var (
		projects   []domain.Project
		totalCount int
	)

	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Image,
			&p.Text,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan project row: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate project rows: %w", err)
	}

	if projects == nil {
		projects = []domain.Project{}
	}

	return projects, totalCount, nil
}

// Update modifies an existing project in the database.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE projects
		SET title = $1, image = $2, text = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query,
		p.Title,
		p.Image,
		p.Text,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("project", p.ID)
	}

	return nil
}

// Delete removes a project from the database by its ID.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("project", id)
	}

	return nil
}
