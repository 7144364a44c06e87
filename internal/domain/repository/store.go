package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

// Selection is the device-local tracking context: which baby is currently
// selected and which naps are in progress, keyed by baby id
type Selection struct {
	CurrentBabyID *uuid.UUID               `json:"current_baby_id,omitempty"`
	ActiveNaps    map[uuid.UUID]entity.Nap `json:"active_naps,omitempty"`
}

// Snapshot is the full persisted state of one household
type Snapshot struct {
	Babies    []entity.Baby
	Naps      []entity.Nap
	Feeds     []entity.Feed
	Ratings   []entity.DailyRating
	Selection Selection
}

// Store is the persistence contract the tracker operates against. The
// tracker is the sole writer; implementations only serialize what they are
// given and never originate mutations.
//
// Load is best-effort: absent or malformed records come back as empty
// collections, not as errors. Saves must round-trip all date fields at
// second precision or better.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	SaveBabies(ctx context.Context, babies []entity.Baby) error
	SaveNaps(ctx context.Context, naps []entity.Nap) error
	SaveFeeds(ctx context.Context, feeds []entity.Feed) error
	SaveRatings(ctx context.Context, ratings []entity.DailyRating) error
	SaveSelection(ctx context.Context, sel Selection) error
}

// Identity resolves the authenticated actor a remote store attaches to its
// reads and writes. Implementations return errs.ErrAuthRequired when no
// session exists at call time.
type Identity interface {
	CurrentActor(ctx context.Context) (uuid.UUID, error)
}
