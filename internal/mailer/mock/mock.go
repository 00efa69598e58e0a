package mock

import (
	"context"
	"log/slog"

	"github.com/Molmash/molmash/internal/mailer"
)

// MockSender is a sender implementation that logs outgoing mail and
// always succeeds. Used in development when no SMTP relay is configured.
type MockSender struct {
	logger *slog.Logger
}

// NewMockSender creates a new mock sender.
func NewMockSender(logger *slog.Logger) *MockSender {
	return &MockSender{logger: logger}
}

// Name returns the name of this sender.
func (s *MockSender) Name() string {
	return "mock"
}

// Send logs the message details instead of delivering it.
func (s *MockSender) Send(ctx context.Context, msg *mailer.Message) error {
	s.logger.InfoContext(ctx, "mock sender: mail sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("body_bytes", len(msg.HTMLBody)),
	)
	return nil
}
