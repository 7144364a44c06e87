package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/errs"
)

// SessionStorage handles session storage in Redis
type SessionStorage struct {
	client     *redis.Client
	sessionTTL time.Duration
}

// NewSessionStorage creates a new session storage
func NewSessionStorage(client *redis.Client, sessionTTL time.Duration) *SessionStorage {
	return &SessionStorage{
		client:     client,
		sessionTTL: sessionTTL,
	}
}

// sessionKey generates Redis key for session
func (s *SessionStorage) sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID.String())
}

// Set stores a session in Redis for the remaining session lifetime
func (s *SessionStorage) Set(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (s *SessionStorage) Get(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session %s: %w", sessionID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete removes a session
func (s *SessionStorage) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, s.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
