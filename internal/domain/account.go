package domain

import (
	"time"
)

// Account represents a registered account in the system.
type Account struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	MiddleName   *string   `json:"middle_name,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Permissions  []string  `json:"permissions"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the verified identity carried through a request after
// authentication. A nil *Identity means the request is anonymous.
type Identity struct {
	AccountID   string
	Login       string
	Permissions []string
	TokenID     string
}

// HasPermission reports whether the identity's permission snapshot
// includes the given codename.
func (i *Identity) HasPermission(codename string) bool {
	if i == nil {
		return false
	}
	for _, p := range i.Permissions {
		if p == codename {
			return true
		}
	}
	return false
}
