package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Molmash/molmash/internal/mailer"
	apperrors "github.com/Molmash/molmash/pkg/errors"
)

// --- Mock Sender ---

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Name() string {
	return "mock"
}

func (m *mockSender) Send(ctx context.Context, msg *mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func noteInput() RequestNoteInput {
	return RequestNoteInput{
		Phone: "+79161234567",
		Name:  "Иван Петров",
		Email: "ivan@example.com",
	}
}

// --- Submit Tests ---

func TestSubmit_SendsRenderedEmail(t *testing.T) {
	sender := new(mockSender)
	svc := NewNoteService(sender, newTestEventProducer(), "owner@example.com", newTestLogger())
	ctx := context.Background()

	sender.On("Send", ctx, mock.MatchedBy(func(msg *mailer.Message) bool {
		return msg.To == "owner@example.com" &&
			msg.Subject == "Новая заявка" &&
			len(msg.HTMLBody) > 0
	})).Return(nil)

	err := svc.Submit(ctx, noteInput())

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSubmit_BodyContainsSubmission(t *testing.T) {
	sender := new(mockSender)
	svc := NewNoteService(sender, newTestEventProducer(), "owner@example.com", newTestLogger())
	ctx := context.Background()

	var captured *mailer.Message
	sender.On("Send", ctx, mock.AnythingOfType("*mailer.Message")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*mailer.Message)
		}).
		Return(nil)

	require.NoError(t, svc.Submit(ctx, noteInput()))
	require.NotNil(t, captured)
	assert.Contains(t, captured.HTMLBody, "Иван Петров")
	assert.Contains(t, captured.HTMLBody, "+79161234567")
	assert.Contains(t, captured.HTMLBody, "ivan@example.com")
}

func TestSubmit_NoRecipientConfigured(t *testing.T) {
	sender := new(mockSender)
	svc := NewNoteService(sender, newTestEventProducer(), "", newTestLogger())

	err := svc.Submit(context.Background(), noteInput())

	require.Error(t, err)
	assert.Equal(t, 500, apperrors.HTTPStatus(err))
	assert.Contains(t, err.Error(), "Email получателя не настроен.")
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmit_TransportFailureIsUpstream(t *testing.T) {
	sender := new(mockSender)
	svc := NewNoteService(sender, newTestEventProducer(), "owner@example.com", newTestLogger())
	ctx := context.Background()

	sender.On("Send", ctx, mock.AnythingOfType("*mailer.Message")).
		Return(errors.New("dial tcp: connection refused"))

	err := svc.Submit(ctx, noteInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, 502, apperrors.HTTPStatus(err))
}
