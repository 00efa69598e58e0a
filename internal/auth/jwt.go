package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Molmash/molmash/internal/domain"
)

const issuer = "molmash"

// Token type claim values. Access and refresh tokens share a secret and
// signing method, so the claim is what keeps one from standing in for
// the other.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims represents the JWT claims for an access token. The permission
// snapshot is frozen at issue time; RegisteredClaims.ID carries the jti
// shared with the refresh token.
type Claims struct {
	AccountID   string   `json:"account_id"`
	Login       string   `json:"login"`
	Permissions []string `json:"permissions"`
	TokenType   string   `json:"token_type"`
	jwt.RegisteredClaims
}

// RefreshClaims represents the JWT claims for a refresh token.
type RefreshClaims struct {
	AccountID string `json:"account_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the access/refresh token pair.
type TokenIssuer struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenIssuer creates a token issuer with the given secret and expiry durations.
func NewTokenIssuer(secret string, accessExpiry, refreshExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Issue creates a signed access/refresh pair for the account along with
// the IssuedToken record to persist. Both tokens share a freshly minted
// jti, which is also the record's id.
func (m *TokenIssuer) Issue(account *domain.Account) (*domain.TokenPair, *domain.IssuedToken, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()

	accessClaims := &Claims{
		AccountID:   account.ID,
		Login:       account.Login,
		Permissions: account.Permissions,
		TokenType:   tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessExpiry)),
			Issuer:    issuer,
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(m.secret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshExpires := now.Add(m.refreshExpiry)
	refreshClaims := &RefreshClaims{
		AccountID: account.ID,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpires),
			Issuer:    issuer,
		},
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.secret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign refresh token: %w", err)
	}

	record := &domain.IssuedToken{
		ID:        jti,
		AccountID: account.ID,
		TokenHash: HashToken(refresh),
		IssuedAt:  now,
		ExpiresAt: refreshExpires,
	}

	return &domain.TokenPair{Access: access, Refresh: refresh}, record, nil
}

// VerifyAccess parses and validates an access token, returning the claims.
// Verification is signature and expiry only; revocation is checked
// separately against the issued-token store.
func (m *TokenIssuer) VerifyAccess(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, m.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token claims")
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("token type %q is not an access token", claims.TokenType)
	}

	return claims, nil
}

// VerifyRefresh parses and validates a refresh token, returning the claims.
func (m *TokenIssuer) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, m.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("parse refresh token: %w", err)
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid refresh token claims")
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, fmt.Errorf("token type %q is not a refresh token", claims.TokenType)
	}

	return claims, nil
}

func (m *TokenIssuer) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return m.secret, nil
}

// HashToken returns the hex-encoded sha256 digest of a token string.
// Only the digest is persisted, never the token itself.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
