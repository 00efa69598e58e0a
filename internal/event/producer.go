package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Molmash/molmash/internal/domain"
	pkgkafka "github.com/Molmash/molmash/pkg/kafka"
	"github.com/Molmash/molmash/pkg/logger"
)

// Kafka topic constants for domain events.
const (
	TopicSubscriptionCreated = "mol.subscription.created"
	TopicNoteRequested       = "mol.note.requested"
	TopicAccountLoggedOut    = "mol.account.logged_out"
)

// Aggregate type constants.
const (
	AggregateTypeSubscription = "subscription"
	AggregateTypeNote         = "note"
	AggregateTypeAccount      = "account"
)

// Source identifier for events originating from this service.
const SourceBackend = "molmash-backend"

// SubscriptionCreatedData is the payload for a subscription.created event.
type SubscriptionCreatedData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NoteRequestedData is the payload for a note.requested event.
type NoteRequestedData struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	RequestTime string `json:"request_time"`
}

// AccountLoggedOutData is the payload for an account.logged_out event.
type AccountLoggedOutData struct {
	AccountID    string `json:"account_id"`
	RevokedCount int    `json:"revoked_count"`
}

// Publisher delivers a single event to a topic. *pkgkafka.Producer
// satisfies it in production; tests substitute a no-op implementation.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishSubscriptionCreated publishes a subscription.created event.
func (p *Producer) PublishSubscriptionCreated(ctx context.Context, sub *domain.Subscription) error {
	data := SubscriptionCreatedData{
		ID:    sub.ID,
		Email: sub.Email,
	}

	event, err := pkgkafka.NewEvent(TopicSubscriptionCreated, sub.ID, AggregateTypeSubscription, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create subscription.created event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicSubscriptionCreated, event); err != nil {
		return fmt.Errorf("publish subscription.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published subscription.created event",
		slog.String("subscription_id", sub.ID),
	)

	return nil
}

// PublishNoteRequested publishes a note.requested event.
func (p *Producer) PublishNoteRequested(ctx context.Context, noteID string, data NoteRequestedData) error {
	event, err := pkgkafka.NewEvent(TopicNoteRequested, noteID, AggregateTypeNote, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create note.requested event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicNoteRequested, event); err != nil {
		return fmt.Errorf("publish note.requested event: %w", err)
	}

	p.logger.DebugContext(ctx, "published note.requested event",
		slog.String("note_id", noteID),
	)

	return nil
}

// PublishAccountLoggedOut publishes an account.logged_out event.
func (p *Producer) PublishAccountLoggedOut(ctx context.Context, accountID string, revoked int) error {
	data := AccountLoggedOutData{
		AccountID:    accountID,
		RevokedCount: revoked,
	}

	event, err := pkgkafka.NewEvent(TopicAccountLoggedOut, accountID, AggregateTypeAccount, SourceBackend, data)
	if err != nil {
		return fmt.Errorf("create account.logged_out event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicAccountLoggedOut, event); err != nil {
		return fmt.Errorf("publish account.logged_out event: %w", err)
	}

	p.logger.DebugContext(ctx, "published account.logged_out event",
		slog.String("account_id", accountID),
		slog.Int("revoked_count", revoked),
	)

	return nil
}
