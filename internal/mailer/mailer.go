package mailer

import (
	"context"
)

// Message is an outbound email.
type Message struct {
	To      string
	Subject string
	// HTMLBody is the rendered HTML payload.
	HTMLBody string
}

// Sender defines the interface for delivering outbound email.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg *Message) error
}
