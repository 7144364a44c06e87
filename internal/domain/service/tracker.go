package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

// DaySummary is the aggregate for one calendar day of one baby
type DaySummary struct {
	Date       time.Time `json:"date"`
	NapMinutes float64   `json:"nap_minutes"`
	FeedAmount float64   `json:"feed_amount"`
	Rating     *int      `json:"rating,omitempty"`
}

// Tracker is the domain state manager: the single source of truth for the
// baby, nap, feed and rating collections, the current-baby selection and
// the per-baby active naps. It is the sole authority for invariant
// enforcement; the injected store is storage only.
//
// Mutations apply to the in-memory snapshot first and are then persisted.
// A persistence failure is reported as errs.ErrPersistence without
// reverting the in-memory change.
type Tracker interface {
	// AddBaby creates a baby profile. The first baby added becomes current.
	AddBaby(ctx context.Context, name string, birthDate time.Time, color entity.Color, imageURL *string) (*entity.Baby, error)

	// EditBaby merges the non-nil update fields into the baby
	EditBaby(ctx context.Context, id uuid.UUID, update entity.BabyUpdate) (*entity.Baby, error)

	// DeleteBaby removes the baby and cascades to all naps, feeds and
	// ratings it owns. Selection state referencing the baby is repaired.
	DeleteBaby(ctx context.Context, id uuid.UUID) error

	// SelectBaby makes the baby current. Unknown ids are ignored.
	SelectBaby(ctx context.Context, id uuid.UUID) error

	Babies(ctx context.Context) ([]entity.Baby, error)
	CurrentBaby(ctx context.Context) (*entity.Baby, error)

	// StartNap begins a nap for the current baby at the current time
	StartNap(ctx context.Context) (*entity.Nap, error)

	// EndNap ends the current baby's active nap. With no active nap it is
	// a silent no-op and returns (nil, nil).
	EndNap(ctx context.Context) (*entity.Nap, error)

	// AddNap logs a completed nap with caller-supplied times. It bypasses
	// the active-nap mechanism entirely.
	AddNap(ctx context.Context, babyID uuid.UUID, start, end, date time.Time) (*entity.Nap, error)

	// DeleteNap removes the nap, clearing any active-nap reference to it
	DeleteNap(ctx context.Context, id uuid.UUID) error

	Naps(ctx context.Context) ([]entity.Nap, error)
	ActiveNap(ctx context.Context, babyID uuid.UUID) (*entity.Nap, error)
	ActiveNaps(ctx context.Context) ([]entity.Nap, error)

	AddFeed(ctx context.Context, babyID uuid.UUID, amount float64, at, date time.Time) (*entity.Feed, error)
	DeleteFeed(ctx context.Context, id uuid.UUID) error
	Feeds(ctx context.Context) ([]entity.Feed, error)

	// AddRating records the baby's rating for the given calendar day,
	// overwriting the value of an existing rating for that day in place
	AddRating(ctx context.Context, babyID uuid.UUID, rating int, date time.Time) (*entity.DailyRating, error)
	Ratings(ctx context.Context) ([]entity.DailyRating, error)

	// TodaysFeedTotal sums today's feed amounts for the current baby
	TodaysFeedTotal(ctx context.Context) (float64, error)

	// TodaysNapTotal sums today's completed nap durations in minutes for
	// the current baby. Active naps contribute zero until ended.
	TodaysNapTotal(ctx context.Context) (float64, error)

	// TodaysRating returns today's rating for the current baby, if any
	TodaysRating(ctx context.Context) (int, bool, error)

	// WeekSummary returns per-day aggregates for the seven calendar days
	// ending at end
	WeekSummary(ctx context.Context, babyID uuid.UUID, end time.Time) ([]DaySummary, error)
}
