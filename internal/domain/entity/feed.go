package entity

import (
	"time"

	"github.com/google/uuid"
)

// MinFeedAmount is the smallest loggable feed, in oz
const MinFeedAmount = 0.5

// Feed is a single feeding record. Feeds are never edited in place, only
// added and deleted.
type Feed struct {
	ID     uuid.UUID `json:"id"`
	BabyID uuid.UUID `json:"baby_id"`
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
	Date   time.Time `json:"date"`
}
