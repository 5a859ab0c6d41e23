package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "piggy-bank")
	userID := uuid.New()

	token, expiresAt, err := svc.Generate(userID, "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, "piggy-bank")

	token, _, err := svc.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour, "piggy-bank")
	verifier := NewTokenService("secret-b", time.Hour, "piggy-bank")

	token, _, err := signer.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_WrongIssuer(t *testing.T) {
	signer := NewTokenService("test-secret", time.Hour, "someone-else")
	verifier := NewTokenService("test-secret", time.Hour, "piggy-bank")

	token, _, err := signer.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "piggy-bank")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
