package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailyRating is a 1-10 mood rating for one baby on one calendar day.
// At most one rating exists per (baby, day); rating the same day again
// overwrites the value of the existing record.
type DailyRating struct {
	ID     uuid.UUID `json:"id"`
	BabyID uuid.UUID `json:"baby_id"`
	Rating int       `json:"rating"`
	Date   time.Time `json:"date"`
}
