package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/errs"
	"github.com/beam-xyz/beambaby/internal/domain/repository"
	"github.com/beam-xyz/beambaby/internal/domain/service"
	redisinfra "github.com/beam-xyz/beambaby/internal/infrastructure/redis"
	"github.com/beam-xyz/beambaby/pkg/hash"
	pkgjwt "github.com/beam-xyz/beambaby/pkg/jwt"
	"github.com/beam-xyz/beambaby/pkg/validation"
)

type authService struct {
	users      repository.UserRepository
	sessions   *redisinfra.SessionStorage
	tokens     *pkgjwt.TokenManager
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repository.UserRepository,
	sessions *redisinfra.SessionStorage,
	tokens *pkgjwt.TokenManager,
	sessionTTL time.Duration,
	logger *zap.Logger,
) service.Auth {
	return &authService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *authService) Register(ctx context.Context, email, password string, displayName *string) (*entity.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", errs.ErrValidation)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("caregiver registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*entity.User, *service.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil, fmt.Errorf("invalid credentials: %w", errs.ErrAuthRequired)
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := hash.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", errs.ErrAuthRequired)
	}

	now := time.Now().UTC()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, session.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return user, &service.TokenPair{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return nil
}

func (s *authService) Validate(ctx context.Context, accessToken string) (uuid.UUID, uuid.UUID, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid access token: %w", errs.ErrAuthRequired)
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return uuid.Nil, uuid.Nil, fmt.Errorf("session expired: %w", errs.ErrAuthRequired)
		}
		return uuid.Nil, uuid.Nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if session.UserID != claims.UserID || session.Expired() {
		return uuid.Nil, uuid.Nil, fmt.Errorf("session mismatch: %w", errs.ErrAuthRequired)
	}

	return claims.UserID, claims.SessionID, nil
}
