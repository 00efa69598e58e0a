package domain

import (
	"time"
)

// IssuedToken records one refresh-token issuance. The row id doubles as
// the jti shared by the access/refresh pair; a non-NULL RevokedAt marks
// the pair blacklisted.
type IssuedToken struct {
	ID        string     `json:"id"`
	AccountID string     `json:"account_id"`
	TokenHash string     `json:"-"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Revoked reports whether the token has been blacklisted.
func (t *IssuedToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token's lifetime has passed at the given instant.
func (t *IssuedToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// TokenPair holds an access and refresh token pair returned at login and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
