package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/pkg/database"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

// AccountRepository implements repository.AccountRepository using PostgreSQL.
type AccountRepository struct {
	db database.DBTX
}

// NewAccountRepository creates a new PostgreSQL-backed account repository.
func NewAccountRepository(db database.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account into the database.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `
		INSERT INTO accounts (id, login, email, password_hash, first_name, last_name, middle_name, phone, permissions, is_active, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.Login,
		a.Email,
		a.PasswordHash,
		a.FirstName,
		a.LastName,
		a.MiddleName,
		a.Phone,
		a.Permissions,
		a.IsActive,
		a.IsStaff,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("account", "login", a.Login)
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT id, login, email, password_hash, first_name, last_name, middle_name, phone, permissions, is_active, is_staff, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	return r.scanAccount(ctx, query, id)
}

// GetByLogin retrieves an account by its login handle. The comparison is
// case-sensitive: "User1" and "user1" are distinct handles.
func (r *AccountRepository) GetByLogin(ctx context.Context, login string) (*domain.Account, error) {
	query := `
		SELECT id, login, email, password_hash, first_name, last_name, middle_name, phone, permissions, is_active, is_staff, created_at, updated_at
		FROM accounts
		WHERE login = $1`

	return r.scanAccount(ctx, query, login)
}

// Count returns the total number of accounts.
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) scanAccount(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	var a domain.Account

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&a.ID,
		&a.Login,
		&a.Email,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&a.MiddleName,
		&a.Phone,
		&a.Permissions,
		&a.IsActive,
		&a.IsStaff,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return &a, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
