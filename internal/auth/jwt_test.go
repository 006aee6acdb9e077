package auth

import (
	"testing"
	"time"

	"gigflow_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_RoundTrip(t *testing.T) {
	token, err := IssueToken("secret", "user-1", time.Hour)
	require.NoError(t, err)

	v := NewTokenVerifier("secret")

	userID, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	userID, err = v.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerify_Rejects(t *testing.T) {
	v := NewTokenVerifier("secret")

	good, err := IssueToken("other-secret", "user-1", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken("secret", "user-1", -time.Minute)
	require.NoError(t, err)
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not-a-token",
		"wrong secret":    good,
		"expired":         expired,
		"missing subject": noSub,
		"alg none":        none,
	}

	for name, credential := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(credential)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		})
	}
}
