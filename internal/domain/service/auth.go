package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

// TokenPair is the credential material returned on login
type TokenPair struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Auth manages caregiver accounts and sessions for the remote backend
type Auth interface {
	// Register creates a new caregiver account
	Register(ctx context.Context, email, password string, displayName *string) (*entity.User, error)

	// Login authenticates a caregiver and opens a session
	Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error)

	// Logout closes the session
	Logout(ctx context.Context, sessionID uuid.UUID) error

	// Validate resolves an access token to the acting user and session.
	// Tokens whose session is gone are rejected.
	Validate(ctx context.Context, accessToken string) (userID, sessionID uuid.UUID, err error)
}
