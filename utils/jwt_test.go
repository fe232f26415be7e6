package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "sess-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "sess-1", claims.Subject)
}

func TestSessionToken_Rejects(t *testing.T) {
	good, err := GenerateSessionToken("secret", "sess-1", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateSessionToken("secret", "sess-1", -time.Minute)
	require.NoError(t, err)
	noSession, err := GenerateSessionToken("secret", "", time.Hour)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{SessionID: "sess-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct {
		secret string
		token  string
	}{
		"wrong secret": {"other", good},
		"expired":      {"secret", expired},
		"garbage":      {"secret", "not-a-token"},
		"no session":   {"secret", noSession},
		"alg none":     {"secret", unsigned},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateSessionToken(tc.secret, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
