package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, "beambaby")

	userID := uuid.New()
	sessionID := uuid.New()

	token, expiresAt, err := tm.GenerateAccessToken(userID, sessionID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tm.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, "beambaby", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, "beambaby")
	other := NewTokenManager("other-secret", time.Hour, "beambaby")

	token, _, err := tm.GenerateAccessToken(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute, "beambaby")

	token, _, err := tm.GenerateAccessToken(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, "beambaby")

	_, err := tm.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
