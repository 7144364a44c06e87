package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a caregiver account. Accounts exist only when the
// service runs against the remote backend; local mode is single-user.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  *string   `json:"display_name,omitempty" db:"display_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserResponse is the user shape for API responses, without sensitive data
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
