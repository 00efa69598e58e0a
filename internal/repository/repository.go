package repository

import (
	"context"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/pkg/pagination"
)

// ContentFilter narrows and orders blog/project list queries.
type ContentFilter struct {
	// Search matches title or text case-insensitively when non-empty.
	Search string

	// OrderBy is a whitelisted column name, prefixed with "-" for
	// descending. Empty means newest first.
	OrderBy string
}

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create inserts a new account into the store.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Account, error)

	// GetByLogin retrieves an account by its login handle. Matching is
	// case-sensitive.
	GetByLogin(ctx context.Context, login string) (*domain.Account, error)

	// Count returns the total number of accounts.
	Count(ctx context.Context) (int, error)
}

// TokenRepository defines the interface for issued-token persistence.
type TokenRepository interface {
	// Create records a new issuance.
	Create(ctx context.Context, token *domain.IssuedToken) error

	// GetByID retrieves an issuance by its id (the jti).
	GetByID(ctx context.Context, id string) (*domain.IssuedToken, error)

	// GetByHash retrieves an issuance by its refresh-token hash.
	GetByHash(ctx context.Context, tokenHash string) (*domain.IssuedToken, error)

	// Revoke blacklists a single issuance by its refresh-token hash.
	Revoke(ctx context.Context, tokenHash string) error

	// RevokeAllByAccount blacklists every live issuance for the account
	// and returns how many rows were revoked. Idempotent.
	RevokeAllByAccount(ctx context.Context, accountID string) (int, error)
}

// BlogRepository defines the interface for blog persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context, filter ContentFilter, params pagination.Params) ([]domain.Blog, int, error)
	Update(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository defines the interface for project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ContentFilter, params pagination.Params) ([]domain.Project, int, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// SubscriptionRepository defines the interface for mailing-list persistence.
// Create-only: the HTTP surface never reads subscriptions back.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
}
