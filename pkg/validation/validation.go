package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/errs"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxBabyNameLength = 100

	MinRating = 1
	MaxRating = 10
)

var (
	// Email regex pattern (basic validation)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return fmt.Errorf("%w: email is required", errs.ErrValidation)
	}

	if len(email) > 255 {
		return fmt.Errorf("%w: email is too long (max 255 characters)", errs.ErrValidation)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", errs.ErrValidation)
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", errs.ErrValidation)
	}

	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password is too long (max %d characters)", errs.ErrValidation, MaxPasswordLength)
	}

	return nil
}

// ValidateBabyName validates a baby profile name
func ValidateBabyName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name is required", errs.ErrValidation)
	}

	if len(name) > MaxBabyNameLength {
		return fmt.Errorf("%w: name is too long (max %d characters)", errs.ErrValidation, MaxBabyNameLength)
	}

	return nil
}

// ValidateBirthDate rejects birth dates in the future
func ValidateBirthDate(birthDate time.Time) error {
	if birthDate.IsZero() {
		return fmt.Errorf("%w: birth date is required", errs.ErrValidation)
	}

	if entity.DateOnly(birthDate).After(entity.Today()) {
		return fmt.Errorf("%w: birth date cannot be in the future", errs.ErrValidation)
	}

	return nil
}

// ValidateColor validates the profile color tag
func ValidateColor(color entity.Color) error {
	if !color.Valid() {
		return fmt.Errorf("%w: unknown color %q", errs.ErrValidation, string(color))
	}
	return nil
}

// ValidateFeedAmount enforces the minimum loggable feed
func ValidateFeedAmount(amount float64) error {
	if amount < entity.MinFeedAmount {
		return fmt.Errorf("%w: feed amount must be at least %g oz", errs.ErrValidation, entity.MinFeedAmount)
	}
	return nil
}

// ValidateNapInterval requires the end time to be strictly after the start
func ValidateNapInterval(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: nap end time must be after start time", errs.ErrValidation)
	}
	return nil
}

// ValidateRating enforces the 1-10 rating scale. This mirrors what the
// clients constrain; the tracker itself stores whatever value it is given.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", errs.ErrValidation, MinRating, MaxRating)
	}
	return nil
}
