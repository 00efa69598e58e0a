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

// blogOrderColumns whitelists the columns list ordering may target.
var blogOrderColumns = map[string]bool{
	"title":      true,
	"subject":    true,
	"category":   true,
	"created_at": true,
	"updated_at": true,
}

// BlogRepository implements repository.BlogRepository using PostgreSQL.
type BlogRepository struct {
	db database.DBTX
}

// NewBlogRepository creates a new PostgreSQL-backed blog repository.
func NewBlogRepository(db database.DBTX) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create inserts a new blog entry into the database.
func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	query := `
		INSERT INTO blogs (id, title, subject, category, image, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Subject,
		b.Category,
		b.Image,
		b.Text,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}

	return nil
}

// GetByID retrieves a blog entry by its ID.
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	query := `
		SELECT id, title, subject, category, image, text, created_at, updated_at
		FROM blogs
		WHERE id = $1`

	var b domain.Blog
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Subject,
		&b.Category,
		&b.Image,
		&b.Text,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}

	return &b, nil
}

// List returns a page of blog entries matching the filter, plus the total count.
func (r *BlogRepository) List(ctx context.Context, filter repository.ContentFilter, params pagination.Params) ([]domain.Blog, int, error) {
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

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT id, title, subject, category, image, text, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM blogs
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderClause(filter.OrderBy, blogOrderColumns), argIndex, argIndex+1,
	)

	args = append(args, params.PerPage, params.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var (
		blogs      []domain.Blog
		totalCount int
	)

	for rows.Next() {
		var b domain.Blog
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Subject,
			&b.Category,
			&b.Image,
			&b.Text,
			&b.CreatedAt,
			&b.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan blog row: %w", err)
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate blog rows: %w", err)
	}

	if blogs == nil {
		blogs = []domain.Blog{}
	}

	return blogs, totalCount, nil
}

// Update modifies an existing blog entry in the database.
func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) error {
	b.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE blogs
		SET title = $1, subject = $2, category = $3, image = $4, text = $5, updated_at = $6
		WHERE id = $7`

	ct, err := r.db.Exec(ctx, query,
		b.Title,
		b.Subject,
		b.Category,
		b.Image,
		b.Text,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("blog", b.ID)
	}

	return nil
}

// Delete removes a blog entry from the database by its ID.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM blogs WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("blog", id)
	}

	return nil
}

// orderClause resolves the requested ordering against a column whitelist.
// A "-" prefix means descending. Unknown or empty requests fall back to
// newest first.
func orderClause(orderBy string, allowed map[string]bool) string {
	direction := "ASC"
	column := orderBy
	if strings.HasPrefix(column, "-") {
		direction = "DESC"
		column = column[1:]
	}

	if !allowed[column] {
		return "created_at DESC"
	}

	return column + " " + direction
}
