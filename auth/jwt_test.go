package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewJWTManager("test-secret-at-least-32-characters!!", time.Hour)
	require.NoError(t, err)

	token, err := m.Generate("user123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTRejectsExpired(t *testing.T) {
	m, err := NewJWTManager("test-secret-at-least-32-characters!!", time.Hour)
	require.NoError(t, err)
	m.timeout = -time.Hour

	token, err := m.Generate("user123", "user@example.com")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	m1, err := NewJWTManager("test-secret-at-least-32-characters!!", time.Hour)
	require.NoError(t, err)
	m2, err := NewJWTManager("another-secret-also-32-characters!!!", time.Hour)
	require.NoError(t, err)

	token, err := m1.Generate("user123", "user@example.com")
	require.NoError(t, err)

	_, err = m2.Validate(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	m, err := NewJWTManager("test-secret-at-least-32-characters!!", time.Hour)
	require.NoError(t, err)

	_, err = m.Validate("not-a-token")
	assert.Error(t, err)
}

func TestJWTRequiresSecret(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.Error(t, err)
}

func TestJWTDefaultTimeout(t *testing.T) {
	m, err := NewJWTManager("test-secret-at-least-32-characters!!", 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.timeout)
}
