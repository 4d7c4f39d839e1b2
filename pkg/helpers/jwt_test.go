package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestJWT()

	tok, exp, err := m.GenerateAccessToken(42, "sid-1")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestAccessTokenRejectedByRefreshParser(t *testing.T) {
	m := newTestJWT()

	tok, _, err := m.GenerateAccessToken(42, "sid-1")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(tok)
	assert.Error(t, err, "tokens must not be valid across secrets")
}

func TestParseExpiredToken(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	tok, _, err := m.GenerateAccessToken(7, "sid-2")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestParseMalformedToken(t *testing.T) {
	_, err := newTestJWT().ParseAccessToken("not.a.jwt")
	assert.Error(t, err)
}
