package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := "0195c3a2-7e2b-7c91-a1f0-2b8f4a6d9e01"

	token, err := GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("some-user")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}
