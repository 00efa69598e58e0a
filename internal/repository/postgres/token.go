package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/pkg/database"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

// TokenRepository implements repository.TokenRepository using PostgreSQL.
// A non-NULL revoked_at is the blacklist entry; it is set once and never
// cleared.
type TokenRepository struct {
	db database.DBTX
}

// NewTokenRepository creates a new PostgreSQL-backed issued-token repository.
func NewTokenRepository(db database.DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create records a new token issuance.
func (r *TokenRepository) Create(ctx context.Context, t *domain.IssuedToken) error {
	query := `
		INSERT INTO issued_tokens (id, account_id, token_hash, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, t.ID, t.AccountID, t.TokenHash, t.IssuedAt, t.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert issued token: %w", err)
	}

	return nil
}

// GetByID retrieves an issuance by its id (the jti shared by the pair).
func (r *TokenRepository) GetByID(ctx context.Context, id string) (*domain.IssuedToken, error) {
	query := `
		SELECT id, account_id, token_hash, issued_at, expires_at, revoked_at
		FROM issued_tokens
		WHERE id = $1`

	return r.scanToken(ctx, query, id)
}

// GetByHash retrieves an issuance by its refresh-token hash.
func (r *TokenRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.IssuedToken, error) {
	query := `
		SELECT id, account_id, token_hash, issued_at, expires_at, revoked_at
		FROM issued_tokens
		WHERE token_hash = $1`

	return r.scanToken(ctx, query, tokenHash)
}

// Revoke blacklists a single issuance by its refresh-token hash.
// Revoking an already-revoked token is a no-op.
func (r *TokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	query := `UPDATE issued_tokens SET revoked_at = $1 WHERE token_hash = $2 AND revoked_at IS NULL`

	_, err := r.db.Exec(ctx, query, time.Now().UTC(), tokenHash)
	if err != nil {
		return fmt.Errorf("revoke issued token: %w", err)
	}

	return nil
}

// RevokeAllByAccount blacklists every live issuance for the account,
// expired ones included, and returns how many rows were revoked. Running
// it again revokes nothing and returns 0 without error.
func (r *TokenRepository) RevokeAllByAccount(ctx context.Context, accountID string) (int, error) {
	query := `UPDATE issued_tokens SET revoked_at = $1 WHERE account_id = $2 AND revoked_at IS NULL`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), accountID)
	if err != nil {
		return 0, fmt.Errorf("revoke issued tokens by account: %w", err)
	}

	return int(ct.RowsAffected()), nil
}

func (r *TokenRepository) scanToken(ctx context.Context, query string, args ...any) (*domain.IssuedToken, error) {
	var t domain.IssuedToken

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID,
		&t.AccountID,
		&t.TokenHash,
		&t.IssuedAt,
		&t.ExpiresAt,
		&t.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan issued token: %w", err)
	}

	return &t, nil
}
