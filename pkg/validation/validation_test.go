package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/errs"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("parent@example.com"))
	assert.ErrorIs(t, ValidateEmail(""), errs.ErrValidation)
	assert.ErrorIs(t, ValidateEmail("not-an-email"), errs.ErrValidation)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.ErrorIs(t, ValidatePassword(""), errs.ErrValidation)
	assert.ErrorIs(t, ValidatePassword("short"), errs.ErrValidation)
}

func TestValidateBabyName(t *testing.T) {
	assert.NoError(t, ValidateBabyName("Ava"))
	assert.ErrorIs(t, ValidateBabyName(""), errs.ErrValidation)
	assert.ErrorIs(t, ValidateBabyName("   "), errs.ErrValidation)
}

func TestValidateBirthDate(t *testing.T) {
	assert.NoError(t, ValidateBirthDate(time.Now()))
	assert.NoError(t, ValidateBirthDate(time.Now().AddDate(-1, 0, 0)))
	assert.ErrorIs(t, ValidateBirthDate(time.Time{}), errs.ErrValidation)
	assert.ErrorIs(t, ValidateBirthDate(time.Now().AddDate(0, 0, 1)), errs.ErrValidation)
}

func TestValidateColor(t *testing.T) {
	assert.NoError(t, ValidateColor(entity.ColorMint))
	assert.ErrorIs(t, ValidateColor(entity.Color("magenta")), errs.ErrValidation)
}

func TestValidateFeedAmount(t *testing.T) {
	assert.NoError(t, ValidateFeedAmount(0.5))
	assert.NoError(t, ValidateFeedAmount(8))
	assert.ErrorIs(t, ValidateFeedAmount(0.49), errs.ErrValidation)
	assert.ErrorIs(t, ValidateFeedAmount(0), errs.ErrValidation)
}

func TestValidateNapInterval(t *testing.T) {
	now := time.Now()
	assert.NoError(t, ValidateNapInterval(now, now.Add(time.Minute)))
	assert.ErrorIs(t, ValidateNapInterval(now, now), errs.ErrValidation)
	assert.ErrorIs(t, ValidateNapInterval(now, now.Add(-time.Minute)), errs.ErrValidation)
}

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(10))
	assert.ErrorIs(t, ValidateRating(0), errs.ErrValidation)
	assert.ErrorIs(t, ValidateRating(11), errs.ErrValidation)
}
