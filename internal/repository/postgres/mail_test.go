package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/pkg/database"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

func newSubscriptionTestFixture(t *testing.T) (*SubscriptionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewSubscriptionRepository(mock)
	return repo, mock
}

func TestSubscriptionRepository_Create_Success(t *testing.T) {
	repo, mock := newSubscriptionTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	sub := &domain.Subscription{ID: "sub-1", Email: "user@example.com", CreatedAt: now}

	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs("sub-1", "user@example.com", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), sub)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newSubscriptionTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	sub := &domain.Subscription{ID: "sub-2", Email: "user@example.com", CreatedAt: now}

	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs("sub-2", "user@example.com", now).
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), sub)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_Create_ExecError(t *testing.T) {
	repo, mock := newSubscriptionTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	sub := &domain.Subscription{ID: "sub-3", Email: "user@example.com", CreatedAt: now}

	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs("sub-3", "user@example.com", now).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert subscription")
	assert.NoError(t, mock.ExpectationsWereMet())
}
