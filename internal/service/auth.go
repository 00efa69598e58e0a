package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Molmash/molmash/internal/auth"
	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/event"
	"github.com/Molmash/molmash/internal/repository"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// loginFailedMessage is returned for unknown login, wrong password and
// deactivated accounts alike, so callers cannot enumerate accounts.
const loginFailedMessage = "Такого пользователя не существует."

// AuthService implements login, logout and the token lifecycle.
type AuthService struct {
	accountRepo repository.AccountRepository
	tokenRepo   repository.TokenRepository
	issuer      *auth.TokenIssuer
	producer    *event.Producer
	logger      *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	accountRepo repository.AccountRepository,
	tokenRepo repository.TokenRepository,
	issuer *auth.TokenIssuer,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		issuer:      issuer,
		producer:    producer,
		logger:      logger,
	}
}

// LoginInput holds the parameters for login.
type LoginInput struct {
	Login    string
	Password string
}

// Login verifies a login/password pair and issues a token pair. The
// login handle is matched case-sensitively.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.TokenPair, error) {
	if input.Login == "" {
		return nil, apperrors.InvalidInput("Введите логин")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("Введите пароль")
	}

	account, err := s.accountRepo.GetByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Equalize timing between unknown-login and wrong-password paths.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$12$000000000000000000000uGyyylbsbdOhHjXzUxl8GhmGUmRnQG2"), []byte(input.Password))
			return nil, apperrors.InvalidCredentials(loginFailedMessage)
		}
		return nil, fmt.Errorf("get account by login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.InvalidCredentials(loginFailedMessage)
	}

	if !account.IsActive {
		return nil, apperrors.InvalidCredentials(loginFailedMessage)
	}

	pair, record, err := s.issuer.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store issued token: %w", err)
	}

	s.logger.InfoContext(ctx, "account logged in",
		slog.String("account_id", account.ID),
		slog.String("login", account.Login),
	)

	return pair, nil
}

// Authenticate verifies an access token and returns the identity it
// carries. Beyond the signature and expiry check, the pair's issuance
// record must still exist and not be blacklisted.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Identity, error) {
	claims, err := s.issuer.VerifyAccess(accessToken)
	if err != nil {
		return nil, apperrors.Unauthenticated("Недопустимый или просроченный токен.")
	}

	record, err := s.tokenRepo.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Недопустимый или просроченный токен.")
		}
		return nil, fmt.Errorf("get issued token: %w", err)
	}

	if record.Revoked() {
		return nil, apperrors.Unauthenticated("Токен отозван.")
	}

	return &domain.Identity{
		AccountID:   claims.AccountID,
		Login:       claims.Login,
		Permissions: claims.Permissions,
		TokenID:     claims.ID,
	}, nil
}

// Logout blacklists every outstanding issuance for the identity, expired
// ones included, and returns how many were revoked. Re-running revokes
// nothing and is not an error.
func (s *AuthService) Logout(ctx context.Context, identity *domain.Identity) (int, error) {
	count, err := s.tokenRepo.RevokeAllByAccount(ctx, identity.AccountID)
	if err != nil {
		return 0, fmt.Errorf("revoke account tokens: %w", err)
	}

	// Publish logout event (non-blocking on failure).
	if err := s.producer.PublishAccountLoggedOut(ctx, identity.AccountID, count); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish account.logged_out event",
			slog.String("account_id", identity.AccountID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "account logged out",
		slog.String("account_id", identity.AccountID),
		slog.Int("revoked_count", count),
	)

	return count, nil
}

// Refresh validates a refresh token, rotates it, and issues a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.InvalidInput("Введите refresh токен")
	}

	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthenticated("Недопустимый или просроченный токен.")
	}

	tokenHash := auth.HashToken(refreshToken)
	stored, err := s.tokenRepo.GetByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Недопустимый или просроченный токен.")
		}
		return nil, fmt.Errorf("get issued token by hash: %w", err)
	}

	if stored.Revoked() {
		return nil, apperrors.Unauthenticated("Токен отозван.")
	}
	if stored.Expired(time.Now().UTC()) {
		return nil, apperrors.Unauthenticated("Недопустимый или просроченный токен.")
	}

	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, fmt.Errorf("get account for refresh: %w", err)
	}

	if !account.IsActive {
		return nil, apperrors.Unauthenticated("Токен отозван.")
	}

	// Rotate: blacklist the presented token before issuing the new pair.
	if err := s.tokenRepo.Revoke(ctx, tokenHash); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke rotated refresh token",
			slog.String("account_id", claims.AccountID),
			slog.String("error", err.Error()),
		)
	}

	pair, record, err := s.issuer.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store issued token: %w", err)
	}

	s.logger.InfoContext(ctx, "tokens refreshed",
		slog.String("account_id", account.ID),
	)

	return pair, nil
}

// EnsureInitialAdmin provisions the administrative account from env
// configuration when the accounts table is empty. Called once at startup.
func (s *AuthService) EnsureInitialAdmin(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return nil
	}

	count, err := s.accountRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Login:        login,
		Email:        login + "@localhost",
		PasswordHash: string(hash),
		Permissions:  domain.AllPermissions,
		IsActive:     true,
		IsStaff:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return fmt.Errorf("create initial admin: %w", err)
	}

	s.logger.InfoContext(ctx, "initial admin account provisioned",
		slog.String("account_id", account.ID),
		slog.String("login", login),
	)

	return nil
}
