// Package postgres implements the persistence contract against the remote
// relational backend. All reads and writes are scoped to the authenticated
// actor; column naming stays inside this package and never leaks into the
// domain types.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/errs"
	"github.com/beam-xyz/beambaby/internal/domain/repository"
)

// TrackerStore is the remote persistence adapter
type TrackerStore struct {
	pool     *pgxpool.Pool
	identity repository.Identity
}

// NewTrackerStore creates a new PostgreSQL tracker store. Every operation
// resolves the acting user through identity before touching the database.
func NewTrackerStore(pool *pgxpool.Pool, identity repository.Identity) *TrackerStore {
	return &TrackerStore{pool: pool, identity: identity}
}

func (s *TrackerStore) actor(ctx context.Context) (uuid.UUID, error) {
	if s.identity == nil {
		return uuid.Nil, fmt.Errorf("no identity configured: %w", errs.ErrAuthRequired)
	}
	return s.identity.CurrentActor(ctx)
}

// Load reads the actor's collections. Selection state is device-local and
// is not stored remotely, so it comes back empty.
func (s *TrackerStore) Load(ctx context.Context) (*repository.Snapshot, error) {
	userID, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	babies, err := s.loadBabies(ctx, userID)
	if err != nil {
		return nil, err
	}
	naps, err := s.loadNaps(ctx, userID)
	if err != nil {
		return nil, err
	}
	feeds, err := s.loadFeeds(ctx, userID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.loadRatings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &repository.Snapshot{
		Babies:  babies,
		Naps:    naps,
		Feeds:   feeds,
		Ratings: ratings,
		Selection: repository.Selection{
			ActiveNaps: make(map[uuid.UUID]entity.Nap),
		},
	}, nil
}

func (s *TrackerStore) loadBabies(ctx context.Context, userID uuid.UUID) ([]entity.Baby, error) {
	query := `
		SELECT id, name, birth_date, image_url, color, created_at
		FROM babies
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load babies: %w: %w", errs.ErrPersistence, err)
	}
	defer rows.Close()

	var babies []entity.Baby
	for rows.Next() {
		var baby entity.Baby
		if err := rows.Scan(
			&baby.ID, &baby.Name, &baby.BirthDate, &baby.ImageURL, &baby.Color, &baby.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan baby: %w: %w", errs.ErrPersistence, err)
		}
		babies = append(babies, baby)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load babies: %w: %w", errs.ErrPersistence, err)
	}

	return babies, nil
}

func (s *TrackerStore) loadNaps(ctx context.Context, userID uuid.UUID) ([]entity.Nap, error) {
	query := `
		SELECT id, baby_id, start_time, end_time, date
		FROM naps
		WHERE user_id = $1
		ORDER BY start_time
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load naps: %w: %w", errs.ErrPersistence, err)
	}
	defer rows.Close()

	var naps []entity.Nap
	for rows.Next() {
		var nap entity.Nap
		if err := rows.Scan(
			&nap.ID, &nap.BabyID, &nap.StartTime, &nap.EndTime, &nap.Date,
		); err != nil {
			return nil, fmt.Errorf("scan nap: %w: %w", errs.ErrPersistence, err)
		}
		naps = append(naps, nap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load naps: %w: %w", errs.ErrPersistence, err)
	}

	return naps, nil
}

func (s *TrackerStore) loadFeeds(ctx context.Context, userID uuid.UUID) ([]entity.Feed, error) {
	query := `
		SELECT id, baby_id, amount, time, date
		FROM feeds
		WHERE user_id = $1
		ORDER BY time
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load feeds: %w: %w", errs.ErrPersistence, err)
	}
	defer rows.Close()

	var feeds []entity.Feed
	for rows.Next() {
		var feed entity.Feed
		if err := rows.Scan(
			&feed.ID, &feed.BabyID, &feed.Amount, &feed.Time, &feed.Date,
		); err != nil {
			return nil, fmt.Errorf("scan feed: %w: %w", errs.ErrPersistence, err)
		}
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load feeds: %w: %w", errs.ErrPersistence, err)
	}

	return feeds, nil
}

func (s *TrackerStore) loadRatings(ctx context.Context, userID uuid.UUID) ([]entity.DailyRating, error) {
	query := `
		SELECT id, baby_id, rating, date
		FROM daily_ratings
		WHERE user_id = $1
		ORDER BY date
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w: %w", errs.ErrPersistence, err)
	}
	defer rows.Close()

	var ratings []entity.DailyRating
	for rows.Next() {
		var rating entity.DailyRating
		if err := rows.Scan(
			&rating.ID, &rating.BabyID, &rating.Rating, &rating.Date,
		); err != nil {
			return nil, fmt.Errorf("scan rating: %w: %w", errs.ErrPersistence, err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load ratings: %w: %w", errs.ErrPersistence, err)
	}

	return ratings, nil
}

// syncCollection runs upsert+prune for one table inside a transaction:
// every row in the snapshot is upserted and the actor's rows missing from
// the snapshot are deleted
func (s *TrackerStore) syncCollection(ctx context.Context, name string, ids []uuid.UUID, upsert func(pgx.Tx) error, pruneQuery string, userID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save %s: %w: %w", name, errs.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	if err := upsert(tx); err != nil {
		return fmt.Errorf("save %s: %w: %w", name, errs.ErrPersistence, err)
	}

	if _, err := tx.Exec(ctx, pruneQuery, userID, ids); err != nil {
		return fmt.Errorf("prune %s: %w: %w", name, errs.ErrPersistence, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("save %s: %w: %w", name, errs.ErrPersistence, err)
	}
	return nil
}

// SaveBabies persists the babies collection for the acting user
func (s *TrackerStore) SaveBabies(ctx context.Context, babies []entity.Baby) error {
	userID, err := s.actor(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO babies (id, user_id, name, birth_date, image_url, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			birth_date = EXCLUDED.birth_date,
			image_url = EXCLUDED.image_url,
			color = EXCLUDED.color
	`

	ids := make([]uuid.UUID, 0, len(babies))
	for i := range babies {
		ids = append(ids, babies[i].ID)
	}

	upsert := func(tx pgx.Tx) error {
		for i := range babies {
			b := &babies[i]
			if _, err := tx.Exec(ctx, query,
				b.ID, userID, b.Name, b.BirthDate, b.ImageURL, b.Color, b.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	}

	prune := `DELETE FROM babies WHERE user_id = $1 AND NOT (id = ANY($2))`
	return s.syncCollection(ctx, "babies", ids, upsert, prune, userID)
}

// SaveNaps persists the naps collection for the acting user
func (s *TrackerStore) SaveNaps(ctx context.Context, naps []entity.Nap) error {
	userID, err := s.actor(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO naps (id, user_id, baby_id, start_time, end_time, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			date = EXCLUDED.date
	`

	ids := make([]uuid.UUID, 0, len(naps))
	for i := range naps {
		ids = append(ids, naps[i].ID)
	}

	upsert := func(tx pgx.Tx) error {
		for i := range naps {
			n := &naps[i]
			if _, err := tx.Exec(ctx, query,
				n.ID, userID, n.BabyID, n.StartTime, n.EndTime, n.Date,
			); err != nil {
				return err
			}
		}
		return nil
	}

	prune := `DELETE FROM naps WHERE user_id = $1 AND NOT (id = ANY($2))`
	return s.syncCollection(ctx, "naps", ids, upsert, prune, userID)
}

// SaveFeeds persists the feeds collection for the acting user
func (s *TrackerStore) SaveFeeds(ctx context.Context, feeds []entity.Feed) error {
	userID, err := s.actor(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO feeds (id, user_id, baby_id, amount, time, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	ids := make([]uuid.UUID, 0, len(feeds))
	for i := range feeds {
		ids = append(ids, feeds[i].ID)
	}

	upsert := func(tx pgx.Tx) error {
		for i := range feeds {
			f := &feeds[i]
			if _, err := tx.Exec(ctx, query,
				f.ID, userID, f.BabyID, f.Amount, f.Time, f.Date,
			); err != nil {
				return err
			}
		}
		return nil
	}

	prune := `DELETE FROM feeds WHERE user_id = $1 AND NOT (id = ANY($2))`
	return s.syncCollection(ctx, "feeds", ids, upsert, prune, userID)
}

// SaveRatings persists the ratings collection for the acting user
func (s *TrackerStore) SaveRatings(ctx context.Context, ratings []entity.DailyRating) error {
	userID, err := s.actor(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO daily_ratings (id, user_id, baby_id, rating, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			rating = EXCLUDED.rating,
			date = EXCLUDED.date
	`

	ids := make([]uuid.UUID, 0, len(ratings))
	for i := range ratings {
		ids = append(ids, ratings[i].ID)
	}

	upsert := func(tx pgx.Tx) error {
		for i := range ratings {
			r := &ratings[i]
			if _, err := tx.Exec(ctx, query,
				r.ID, userID, r.BabyID, r.Rating, r.Date,
			); err != nil {
				return err
			}
		}
		return nil
	}

	prune := `DELETE FROM daily_ratings WHERE user_id = $1 AND NOT (id = ANY($2))`
	return s.syncCollection(ctx, "daily_ratings", ids, upsert, prune, userID)
}

// SaveSelection is a no-op for the remote backend: which baby is current
// and which naps are open is device-local context, not shared state.
func (s *TrackerStore) SaveSelection(_ context.Context, _ repository.Selection) error {
	return nil
}
