package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/supplyline-api/config"
)

func testTokenService(secret string, ttlMinutes int) *TokenService {
	return NewTokenService(&config.Config{
		JWTSecret:       secret,
		TokenTTLMinutes: ttlMinutes,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testTokenService("test-secret", 60)

	signed, err := tokens.Issue("user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	subject, err := tokens.Verify(signed)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", subject)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := testTokenService("secret-a", 60)
	verifier := testTokenService("secret-b", 60)

	signed, err := issuer.Issue("user@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	tokens := testTokenService("test-secret", 60)
	tokens.ttl = -time.Minute

	signed, err := tokens.Issue("user@example.com")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	tokens := testTokenService("test-secret", 60)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
