package postgres

import (
	"context"
	"fmt"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/pkg/database"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

// SubscriptionRepository implements repository.SubscriptionRepository using PostgreSQL.
type SubscriptionRepository struct {
	db database.DBTX
}

// NewSubscriptionRepository creates a new PostgreSQL-backed subscription repository.
func NewSubscriptionRepository(db database.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a new subscription. A duplicate email surfaces as
// ErrAlreadyExists so the service can map it to its wire contract.
func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, email, created_at)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, s.ID, s.Email, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("subscription", "email", s.Email)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	return nil
}
