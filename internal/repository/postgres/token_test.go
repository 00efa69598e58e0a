package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/pkg/database"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

func newTokenTestFixture(t *testing.T) (*TokenRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewTokenRepository(mock)
	return repo, mock
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTokenRepository_Create_Success(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	tok := &domain.IssuedToken{
		ID:        "jti-1",
		AccountID: "acc-1",
		TokenHash: "hash-1",
		IssuedAt:  now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}

	mock.ExpectExec("INSERT INTO issued_tokens").
		WithArgs("jti-1", "acc-1", "hash-1", tok.IssuedAt, tok.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), tok)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Create_ExecError(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	tok := &domain.IssuedToken{ID: "jti-1", AccountID: "acc-1", TokenHash: "hash-1", IssuedAt: now, ExpiresAt: now}

	mock.ExpectExec("INSERT INTO issued_tokens").
		WithArgs("jti-1", "acc-1", "hash-1", now, now).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), tok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert issued token")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetByID / GetByHash
// ---------------------------------------------------------------------------

func TestTokenRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := pgxmock.NewRows([]string{"id", "account_id", "token_hash", "issued_at", "expires_at", "revoked_at"}).
		AddRow("jti-1", "acc-1", "hash-1", now, now.Add(time.Hour), nil)

	mock.ExpectQuery("SELECT id, account_id, token_hash, issued_at, expires_at, revoked_at").
		WithArgs("jti-1").
		WillReturnRows(rows)

	tok, err := repo.GetByID(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", tok.AccountID)
	assert.False(t, tok.Revoked())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, account_id, token_hash, issued_at, expires_at, revoked_at").
		WithArgs("jti-missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "jti-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetByHash_Revoked(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	revoked := now.Add(-time.Minute)
	rows := pgxmock.NewRows([]string{"id", "account_id", "token_hash", "issued_at", "expires_at", "revoked_at"}).
		AddRow("jti-1", "acc-1", "hash-1", now.Add(-time.Hour), now.Add(time.Hour), &revoked)

	mock.ExpectQuery("SELECT id, account_id, token_hash, issued_at, expires_at, revoked_at").
		WithArgs("hash-1").
		WillReturnRows(rows)

	tok, err := repo.GetByHash(context.Background(), "hash-1")
	require.NoError(t, err)
	assert.True(t, tok.Revoked())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Revoke / RevokeAllByAccount
// ---------------------------------------------------------------------------

func TestTokenRepository_Revoke_Success(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE issued_tokens SET revoked_at").
		WithArgs(pgxmock.AnyArg(), "hash-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Revoke(context.Background(), "hash-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Revoke_AlreadyRevokedIsNoop(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE issued_tokens SET revoked_at").
		WithArgs(pgxmock.AnyArg(), "hash-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Revoke(context.Background(), "hash-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_RevokeAllByAccount_ReturnsCount(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE issued_tokens SET revoked_at").
		WithArgs(pgxmock.AnyArg(), "acc-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	count, err := repo.RevokeAllByAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_RevokeAllByAccount_SecondCallRevokesNothing(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE issued_tokens SET revoked_at").
		WithArgs(pgxmock.AnyArg(), "acc-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	count, err := repo.RevokeAllByAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_RevokeAllByAccount_ExecError(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE issued_tokens SET revoked_at").
		WithArgs(pgxmock.AnyArg(), "acc-1").
		WillReturnError(errors.New("database timeout"))

	_, err := repo.RevokeAllByAccount(context.Background(), "acc-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke issued tokens by account")
	assert.NoError(t, mock.ExpectationsWereMet())
}
