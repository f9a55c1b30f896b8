package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTokenRoundTrip(t *testing.T) {
	token, err := IssueUserToken(42, "secret", time.Hour)
	require.NoError(t, err)

	userID, err := ParseUserToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestParseUserTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueUserToken(42, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseUserToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseUserTokenRejectsExpired(t *testing.T) {
	token, err := IssueUserToken(42, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseUserToken(token, "secret")
	assert.Error(t, err)
}

func TestParseUserTokenRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 42})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseUserToken(signed, "secret")
	assert.Error(t, err)
}

func TestParseUserTokenRejectsMissingUserID(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseUserToken(signed, "secret")
	assert.ErrorContains(t, err, "missing user_id")
}
