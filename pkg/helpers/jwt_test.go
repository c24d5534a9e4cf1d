package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", accessTTL, refreshTTL)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)

	token, exp, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestExpiredTokenIsDistinguishable(t *testing.T) {
	m := newTestManager(-time.Minute, time.Hour)

	token, _, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestMalformedTokenIsInvalid(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.ParseAccessToken(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestTokenFamiliesAreIsolated(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken("user-123")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	// a token signed for one family must not verify in the other
	_, err = m.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = m.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDifferentSecretsRejected(t *testing.T) {
	m1 := newTestManager(time.Minute, time.Hour)
	m2 := NewJWTManager("other-secret", "other-refresh", time.Minute, time.Hour)

	token, _, err := m1.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = m2.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
