package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/event"
	"github.com/Molmash/molmash/internal/repository"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

// MailService implements the mailing-list subscription logic.
type MailService struct {
	repo     repository.SubscriptionRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewMailService creates a new mailing-list service.
func NewMailService(repo repository.SubscriptionRepository, producer *event.Producer, logger *slog.Logger) *MailService {
	return &MailService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Subscribe adds an email to the mailing list. Emails are stored
// lowercase; a duplicate surfaces as a validation failure, not a
// conflict, to match the public wire contract.
func (s *MailService) Subscribe(ctx context.Context, email string) (*domain.Subscription, error) {
	sub := &domain.Subscription{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.InvalidInput("Значение почты должно быть уникальным.")
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	// Publish subscription event (non-blocking on failure).
	if err := s.producer.PublishSubscriptionCreated(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish subscription.created event",
			slog.String("subscription_id", sub.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "mailing list subscription created",
		slog.String("subscription_id", sub.ID),
	)

	return sub, nil
}
