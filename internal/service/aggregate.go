package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

// napTotal sums the durations, in minutes, of the baby's completed naps on
// the given calendar day. Naps still in progress contribute zero.
func napTotal(naps []entity.Nap, babyID uuid.UUID, day time.Time) float64 {
	var total float64
	for i := range naps {
		nap := &naps[i]
		if nap.BabyID != babyID || nap.EndTime == nil {
			continue
		}
		if !entity.SameDay(nap.Date, day) {
			continue
		}
		total += nap.DurationMinutes()
	}
	return total
}

// feedTotal sums the baby's feed amounts on the given calendar day
func feedTotal(feeds []entity.Feed, babyID uuid.UUID, day time.Time) float64 {
	var total float64
	for i := range feeds {
		feed := &feeds[i]
		if feed.BabyID == babyID && entity.SameDay(feed.Date, day) {
			total += feed.Amount
		}
	}
	return total
}

// ratingFor returns the baby's rating on the given calendar day, if any
func ratingFor(ratings []entity.DailyRating, babyID uuid.UUID, day time.Time) (int, bool) {
	for i := range ratings {
		r := &ratings[i]
		if r.BabyID == babyID && entity.SameDay(r.Date, day) {
			return r.Rating, true
		}
	}
	return 0, false
}
