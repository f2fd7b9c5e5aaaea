package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.GenerateToken("user-42")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestJWTWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, _, err := m.GenerateToken("user-42")
	require.NoError(t, err)

	other := NewJWTManager("different", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, _, err := m.GenerateToken("user-42")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Error(t, err)
}

func TestGenConfirmationCode(t *testing.T) {
	a, err := GenConfirmationCode()
	require.NoError(t, err)
	b, err := GenConfirmationCode()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("CODE1234")
	require.NoError(t, err)
	assert.True(t, CompareHashAndSecret(hash, "CODE1234"))
	assert.False(t, CompareHashAndSecret(hash, "code1234"))
}
