package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef")

	token, expires, err := GenerateAccessToken(secret, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := ParseAccessToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestAccessToken_Rejects(t *testing.T) {
	secret := []byte("0123456789abcdef")

	expired, _, err := GenerateAccessToken(secret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseAccessToken(secret, expired)
	assert.Error(t, err)

	other, _, err := GenerateAccessToken([]byte("fedcba9876543210"), time.Hour)
	require.NoError(t, err)
	_, err = ParseAccessToken(secret, other)
	assert.Error(t, err)

	_, err = ParseAccessToken(secret, "garbage")
	assert.Error(t, err)
}
