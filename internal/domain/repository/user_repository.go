package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

// UserRepository defines the interface for caregiver account persistence.
// Only the remote backend has accounts.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
