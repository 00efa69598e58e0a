package domain

import (
	"time"
)

// Subscription is a mailing-list subscription. Email is stored lowercase
// and is globally unique.
type Subscription struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RequestNote is a contact-form submission. It is never persisted; it is
// rendered into a notification email and forwarded to the configured
// recipient.
type RequestNote struct {
	Phone       string
	Name        string
	Email       string
	RequestTime time.Time
}
