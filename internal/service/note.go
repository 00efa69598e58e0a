package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/event"
	"github.com/Molmash/molmash/internal/mailer"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

// noteSubject is the subject line of the contact-form notification.
const noteSubject = "Новая заявка"

// NoteService forwards contact-form submissions to the configured
// recipient by email. Submissions are never persisted.
type NoteService struct {
	sender   mailer.Sender
	producer *event.Producer
	emailTo  string
	logger   *slog.Logger
}

// NewNoteService creates a new contact-form service. emailTo may be
// empty, in which case every submission fails with a configuration error.
func NewNoteService(sender mailer.Sender, producer *event.Producer, emailTo string, logger *slog.Logger) *NoteService {
	return &NoteService{
		sender:   sender,
		producer: producer,
		emailTo:  emailTo,
		logger:   logger,
	}
}

// RequestNoteInput holds a validated contact-form submission.
type RequestNoteInput struct {
	Phone string
	Name  string
	Email string
}

// Submit renders the notification email and sends it to the configured
// recipient.
func (s *NoteService) Submit(ctx context.Context, input RequestNoteInput) error {
	if s.emailTo == "" {
		return &apperrors.AppError{
			Code:    "EMAIL_NOT_CONFIGURED",
			Message: "Email получателя не настроен.",
			Status:  http.StatusInternalServerError,
			Err:     apperrors.ErrInternal,
		}
	}

	note := &domain.RequestNote{
		Phone:       input.Phone,
		Name:        input.Name,
		Email:       input.Email,
		RequestTime: time.Now(),
	}

	body, err := mailer.RenderRequestNote(note)
	if err != nil {
		return fmt.Errorf("render request note: %w", err)
	}

	msg := &mailer.Message{
		To:       s.emailTo,
		Subject:  noteSubject,
		HTMLBody: body,
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to send request note email",
			slog.String("sender", s.sender.Name()),
			slog.String("error", err.Error()),
		)
		return apperrors.Upstream("Не удалось отправить заявку. Попробуйте позже.")
	}

	// Publish note event (non-blocking on failure).
	noteID := uuid.NewString()
	data := event.NoteRequestedData{
		Name:        note.Name,
		Phone:       note.Phone,
		Email:       note.Email,
		RequestTime: mailer.FormatRequestTime(note.RequestTime),
	}
	if err := s.producer.PublishNoteRequested(ctx, noteID, data); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish note.requested event",
			slog.String("note_id", noteID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "request note forwarded",
		slog.String("note_id", noteID),
	)

	return nil
}
