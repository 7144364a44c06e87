package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated caregiver session, stored in Redis for the
// lifetime of its access token
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired returns true once the session's lifetime has passed
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
