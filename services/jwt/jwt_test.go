package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(42, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAndGetClaims(token, secret)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["id"])
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "right-secret")
	require.NoError(t, err)

	claims, err := ValidateAndGetClaims(token, "wrong-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	claims, err := ValidateAndGetClaims("not.a.token", "secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
