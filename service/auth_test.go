package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, verifyPassword(hash, "hunter22"))
	assert.False(t, verifyPassword(hash, "hunter23"))
	assert.False(t, verifyPassword("", "hunter22"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", normalizeEmail("  A@B.Com "))
	assert.Equal(t, "", normalizeEmail("   "))
}

func TestOAuthSignInRejectsBadProvider(t *testing.T) {
	svc := &AuthService{}

	_, _, err := svc.OAuthSignIn(context.Background(), "twitter", "a@b.com", "A", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The email provider must go through register/login, not OAuth.
	_, _, err = svc.OAuthSignIn(context.Background(), "email", "a@b.com", "A", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.OAuthSignIn(context.Background(), "google", "", "A", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByIDRejectsBadID(t *testing.T) {
	svc := &AuthService{}
	_, err := svc.GetByID(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Deactivate(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
