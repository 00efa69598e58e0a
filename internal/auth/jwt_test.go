package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Molmash/molmash/internal/domain"
)

const testSecret = "test-secret-key-with-enough-entropy"

func testAccount() *domain.Account {
	return &domain.Account{
		ID:          "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Login:       "editor",
		Permissions: []string{domain.PermAddBlog, domain.PermChangeBlog},
	}
}

func TestIssue_AccessTokenVerifies(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	pair, record, err := issuer.Issue(testAccount())
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := issuer.VerifyAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", claims.AccountID)
	assert.Equal(t, "editor", claims.Login)
	assert.Equal(t, []string{domain.PermAddBlog, domain.PermChangeBlog}, claims.Permissions)
	assert.Equal(t, record.ID, claims.ID)
}

func TestIssue_PairSharesJTI(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	pair, record, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	accessClaims, err := issuer.VerifyAccess(pair.Access)
	require.NoError(t, err)
	refreshClaims, err := issuer.VerifyRefresh(pair.Refresh)
	require.NoError(t, err)

	assert.Equal(t, accessClaims.ID, refreshClaims.ID)
	assert.Equal(t, record.ID, refreshClaims.ID)
}

func TestIssue_RecordHoldsRefreshHash(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	pair, record, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	assert.Equal(t, HashToken(pair.Refresh), record.TokenHash)
	assert.NotContains(t, record.TokenHash, ".")
	assert.Len(t, record.TokenHash, 64)
}

func TestIssue_DistinctJTIPerIssuance(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	_, first, err := issuer.Issue(testAccount())
	require.NoError(t, err)
	_, second, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.TokenHash, second.TokenHash)
}

func TestVerifyAccess_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -1*time.Minute, 7*24*time.Hour)

	pair, _, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.Access)
	assert.Error(t, err)
}

func TestVerifyAccess_Tampered(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	pair, _, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	tampered := pair.Access[:len(pair.Access)-2] + "xx"
	_, err = issuer.VerifyAccess(tampered)
	assert.Error(t, err)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)
	other := NewTokenIssuer("a-completely-different-secret", 15*time.Minute, 7*24*time.Hour)

	pair, _, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	_, err = other.VerifyAccess(pair.Access)
	assert.Error(t, err)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	pair, _, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	// Same secret, same signing method: only the token_type claim
	// separates the two. A refresh token must never pass as a bearer
	// credential.
	_, err = issuer.VerifyAccess(pair.Refresh)
	assert.Error(t, err)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	pair, _, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(pair.Access)
	assert.Error(t, err)
}

func TestVerifyRefresh_RejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 7*24*time.Hour)

	_, err := issuer.VerifyRefresh("not-a-jwt")
	assert.Error(t, err)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
}
