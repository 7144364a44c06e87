package entity

import (
	"time"

	"github.com/google/uuid"
)

// Nap is a single sleep interval. A nap with no end time is still in
// progress.
type Nap struct {
	ID        uuid.UUID  `json:"id"`
	BabyID    uuid.UUID  `json:"baby_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Date      time.Time  `json:"date"`
}

// Active returns true while the nap has not been ended
func (n *Nap) Active() bool {
	return n.EndTime == nil
}

// DurationMinutes returns the nap length in minutes. An active nap
// contributes zero until ended.
func (n *Nap) DurationMinutes() float64 {
	if n.EndTime == nil {
		return 0
	}
	return n.EndTime.Sub(n.StartTime).Minutes()
}
