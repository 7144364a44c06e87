package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/errs"
	"github.com/beam-xyz/beambaby/internal/domain/repository"
	"github.com/beam-xyz/beambaby/internal/domain/service"
	"github.com/beam-xyz/beambaby/internal/infrastructure/kafka"
	"github.com/beam-xyz/beambaby/pkg/validation"
)

// snapshot is one actor's hydrated state: their collections, current-baby
// selection and per-baby active naps
type snapshot struct {
	babies        []entity.Baby
	naps          []entity.Nap
	feeds         []entity.Feed
	ratings       []entity.DailyRating
	currentBabyID *uuid.UUID
	activeNaps    map[uuid.UUID]entity.Nap
}

type trackerService struct {
	mu       sync.Mutex
	store    repository.Store
	identity repository.Identity // nil in single-user mode
	producer *kafka.Producer     // optional, nil when events are disabled
	logger   *zap.Logger

	// hydrated state keyed by actor; single-user mode keys everything
	// under the zero id
	snapshots map[uuid.UUID]*snapshot
}

// NewTrackerService creates the domain state manager. State is hydrated
// from the store on first use and kept per actor, so that stores scoping
// data to an authenticated user can load inside a request context and one
// account's collections never bleed into another's. identity is nil for
// the single-user local backend.
func NewTrackerService(store repository.Store, identity repository.Identity, producer *kafka.Producer, logger *zap.Logger) service.Tracker {
	return &trackerService{
		store:     store,
		identity:  identity,
		producer:  producer,
		logger:    logger,
		snapshots: make(map[uuid.UUID]*snapshot),
	}
}

// actor resolves whose state an operation touches
func (s *trackerService) actor(ctx context.Context) (uuid.UUID, error) {
	if s.identity == nil {
		return uuid.Nil, nil
	}
	return s.identity.CurrentActor(ctx)
}

// ensureLoaded returns the acting user's snapshot, hydrating it from the
// store on that user's first operation. Callers must hold mu.
func (s *trackerService) ensureLoaded(ctx context.Context) (*snapshot, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if snap, ok := s.snapshots[actor]; ok {
		return snap, nil
	}

	loaded, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	snap := &snapshot{
		babies:     loaded.Babies,
		naps:       loaded.Naps,
		feeds:      loaded.Feeds,
		ratings:    loaded.Ratings,
		activeNaps: loaded.Selection.ActiveNaps,
	}
	if snap.activeNaps == nil {
		snap.activeNaps = make(map[uuid.UUID]entity.Nap)
	}

	// restore the selection, defaulting to the first baby
	if id := loaded.Selection.CurrentBabyID; id != nil && snap.babyIndex(*id) >= 0 {
		snap.currentBabyID = id
	} else if len(snap.babies) > 0 {
		first := snap.babies[0].ID
		snap.currentBabyID = &first
	}

	s.snapshots[actor] = snap
	return snap, nil
}

func (snap *snapshot) babyIndex(id uuid.UUID) int {
	for i := range snap.babies {
		if snap.babies[i].ID == id {
			return i
		}
	}
	return -1
}

func (snap *snapshot) currentBaby() *entity.Baby {
	if snap.currentBabyID == nil {
		return nil
	}
	if i := snap.babyIndex(*snap.currentBabyID); i >= 0 {
		baby := snap.babies[i]
		return &baby
	}
	return nil
}

func (snap *snapshot) selection() repository.Selection {
	return repository.Selection{
		CurrentBabyID: snap.currentBabyID,
		ActiveNaps:    snap.activeNaps,
	}
}

// The persist helpers run after the in-memory mutation has been applied.
// A failed save is reported to the caller but the optimistic in-memory
// change stays in place.

func (s *trackerService) persistBabies(ctx context.Context, snap *snapshot) error {
	if err := s.store.SaveBabies(ctx, snap.babies); err != nil {
		s.logger.Warn("failed to persist babies", zap.Error(err))
		return fmt.Errorf("save babies: %w: %w", errs.ErrPersistence, err)
	}
	return nil
}

func (s *trackerService) persistNaps(ctx context.Context, snap *snapshot) error {
	if err := s.store.SaveNaps(ctx, snap.naps); err != nil {
		s.logger.Warn("failed to persist naps", zap.Error(err))
		return fmt.Errorf("save naps: %w: %w", errs.ErrPersistence, err)
	}
	return nil
}

func (s *trackerService) persistFeeds(ctx context.Context, snap *snapshot) error {
	if err := s.store.SaveFeeds(ctx, snap.feeds); err != nil {
		s.logger.Warn("failed to persist feeds", zap.Error(err))
		return fmt.Errorf("save feeds: %w: %w", errs.ErrPersistence, err)
	}
	return nil
}

func (s *trackerService) persistRatings(ctx context.Context, snap *snapshot) error {
	if err := s.store.SaveRatings(ctx, snap.ratings); err != nil {
		s.logger.Warn("failed to persist ratings", zap.Error(err))
		return fmt.Errorf("save ratings: %w: %w", errs.ErrPersistence, err)
	}
	return nil
}

func (s *trackerService) persistSelection(ctx context.Context, snap *snapshot) error {
	if err := s.store.SaveSelection(ctx, snap.selection()); err != nil {
		s.logger.Warn("failed to persist selection", zap.Error(err))
		return fmt.Errorf("save selection: %w: %w", errs.ErrPersistence, err)
	}
	return nil
}

// publish emits an activity event, best effort. Event failures never fail
// the operation that triggered them.
func (s *trackerService) publish(ctx context.Context, eventType string, babyID, entityID uuid.UUID) {
	if s.producer == nil {
		return
	}
	event := kafka.ActivityEvent{
		EventID:    kafka.NewEventID(),
		EventType:  eventType,
		BabyID:     babyID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.PublishActivity(ctx, event); err != nil {
		s.logger.Warn("failed to publish activity event",
			zap.String("event_type", eventType), zap.Error(err))
	}
}

func (s *trackerService) AddBaby(ctx context.Context, name string, birthDate time.Time, color entity.Color, imageURL *string) (*entity.Baby, error) {
	if err := validation.ValidateBabyName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateBirthDate(birthDate); err != nil {
		return nil, err
	}
	if err := validation.ValidateColor(color); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	baby := entity.Baby{
		ID:        uuid.New(),
		Name:      name,
		BirthDate: entity.DateOnly(birthDate),
		ImageURL:  imageURL,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	snap.babies = append(snap.babies, baby)

	// the first baby added becomes current
	selectionChanged := false
	if len(snap.babies) == 1 {
		id := baby.ID
		snap.currentBabyID = &id
		selectionChanged = true
	}

	err = s.persistBabies(ctx, snap)
	if selectionChanged {
		if selErr := s.persistSelection(ctx, snap); err == nil {
			err = selErr
		}
	}

	s.publish(ctx, kafka.EventBabyCreated, baby.ID, baby.ID)
	return &baby, err
}

func (s *trackerService) EditBaby(ctx context.Context, id uuid.UUID, update entity.BabyUpdate) (*entity.Baby, error) {
	if update.Name != nil {
		if err := validation.ValidateBabyName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.BirthDate != nil {
		if err := validation.ValidateBirthDate(*update.BirthDate); err != nil {
			return nil, err
		}
	}
	if update.Color != nil {
		if err := validation.ValidateColor(*update.Color); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	i := snap.babyIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("baby %s: %w", id, errs.ErrNotFound)
	}

	update.Apply(&snap.babies[i])
	baby := snap.babies[i]

	return &baby, s.persistBabies(ctx, snap)
}

func (s *trackerService) DeleteBaby(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return err
	}

	i := snap.babyIndex(id)
	if i < 0 {
		return fmt.Errorf("baby %s: %w", id, errs.ErrNotFound)
	}
	snap.babies = append(snap.babies[:i], snap.babies[i+1:]...)

	// cascade: drop everything the baby owned
	snap.naps = filterNaps(snap.naps, id)
	snap.feeds = filterFeeds(snap.feeds, id)
	snap.ratings = filterRatings(snap.ratings, id)
	delete(snap.activeNaps, id)

	// repair the selection
	if snap.currentBabyID != nil && *snap.currentBabyID == id {
		snap.currentBabyID = nil
		if len(snap.babies) > 0 {
			first := snap.babies[0].ID
			snap.currentBabyID = &first
		}
	}

	var firstErr error
	for _, persist := range []func(context.Context, *snapshot) error{
		s.persistBabies, s.persistNaps, s.persistFeeds, s.persistRatings, s.persistSelection,
	} {
		if err := persist(ctx, snap); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.publish(ctx, kafka.EventBabyDeleted, id, id)
	return firstErr
}

func (s *trackerService) SelectBaby(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return err
	}

	// unknown ids are ignored
	if snap.babyIndex(id) < 0 {
		return nil
	}

	snap.currentBabyID = &id
	return s.persistSelection(ctx, snap)
}

func (s *trackerService) Babies(ctx context.Context) ([]entity.Baby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return append([]entity.Baby(nil), snap.babies...), nil
}

func (s *trackerService) CurrentBaby(ctx context.Context) (*entity.Baby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return snap.currentBaby(), nil
}

func (s *trackerService) StartNap(ctx context.Context) (*entity.Nap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	baby := snap.currentBaby()
	if baby == nil {
		return nil, fmt.Errorf("no baby selected: %w", errs.ErrPrecondition)
	}
	if _, ok := snap.activeNaps[baby.ID]; ok {
		return nil, fmt.Errorf("nap already in progress for %s: %w", baby.Name, errs.ErrPrecondition)
	}

	now := time.Now()
	nap := entity.Nap{
		ID:        uuid.New(),
		BabyID:    baby.ID,
		StartTime: now,
		Date:      entity.DateOnly(now),
	}
	snap.naps = append(snap.naps, nap)
	snap.activeNaps[baby.ID] = nap

	err = s.persistNaps(ctx, snap)
	if selErr := s.persistSelection(ctx, snap); err == nil {
		err = selErr
	}

	s.publish(ctx, kafka.EventNapStarted, baby.ID, nap.ID)
	return &nap, err
}

func (s *trackerService) EndNap(ctx context.Context) (*entity.Nap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	baby := snap.currentBaby()
	if baby == nil {
		return nil, nil
	}
	active, ok := snap.activeNaps[baby.ID]
	if !ok {
		// ending with no nap in progress is a silent no-op
		return nil, nil
	}

	end := time.Now()
	var ended *entity.Nap
	for i := range snap.naps {
		if snap.naps[i].ID == active.ID {
			snap.naps[i].EndTime = &end
			nap := snap.naps[i]
			ended = &nap
			break
		}
	}
	delete(snap.activeNaps, baby.ID)

	if ended == nil {
		// active slot referenced a nap that is gone; clearing the slot is
		// all there is to do
		return nil, s.persistSelection(ctx, snap)
	}

	err = s.persistNaps(ctx, snap)
	if selErr := s.persistSelection(ctx, snap); err == nil {
		err = selErr
	}

	s.publish(ctx, kafka.EventNapEnded, baby.ID, ended.ID)
	return ended, err
}

func (s *trackerService) AddNap(ctx context.Context, babyID uuid.UUID, start, end, date time.Time) (*entity.Nap, error) {
	if err := validation.ValidateNapInterval(start, end); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	endTime := end
	nap := entity.Nap{
		ID:        uuid.New(),
		BabyID:    babyID,
		StartTime: start,
		EndTime:   &endTime,
		Date:      entity.DateOnly(date),
	}
	snap.naps = append(snap.naps, nap)

	err = s.persistNaps(ctx, snap)
	s.publish(ctx, kafka.EventNapLogged, babyID, nap.ID)
	return &nap, err
}

func (s *trackerService) DeleteNap(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return err
	}

	found := false
	kept := snap.naps[:0]
	for _, nap := range snap.naps {
		if nap.ID == id {
			found = true
			continue
		}
		kept = append(kept, nap)
	}
	snap.naps = kept
	if !found {
		return nil
	}

	selectionChanged := false
	for babyID, active := range snap.activeNaps {
		if active.ID == id {
			delete(snap.activeNaps, babyID)
			selectionChanged = true
		}
	}

	err = s.persistNaps(ctx, snap)
	if selectionChanged {
		if selErr := s.persistSelection(ctx, snap); err == nil {
			err = selErr
		}
	}
	return err
}

func (s *trackerService) Naps(ctx context.Context) ([]entity.Nap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return append([]entity.Nap(nil), snap.naps...), nil
}

func (s *trackerService) ActiveNap(ctx context.Context, babyID uuid.UUID) (*entity.Nap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	if nap, ok := snap.activeNaps[babyID]; ok {
		return &nap, nil
	}
	return nil, nil
}

func (s *trackerService) ActiveNaps(ctx context.Context) ([]entity.Nap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	naps := make([]entity.Nap, 0, len(snap.activeNaps))
	for _, nap := range snap.activeNaps {
		naps = append(naps, nap)
	}
	return naps, nil
}

func (s *trackerService) AddFeed(ctx context.Context, babyID uuid.UUID, amount float64, at, date time.Time) (*entity.Feed, error) {
	if err := validation.ValidateFeedAmount(amount); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	feed := entity.Feed{
		ID:     uuid.New(),
		BabyID: babyID,
		Amount: amount,
		Time:   at,
		Date:   entity.DateOnly(date),
	}
	snap.feeds = append(snap.feeds, feed)

	err = s.persistFeeds(ctx, snap)
	s.publish(ctx, kafka.EventFeedLogged, babyID, feed.ID)
	return &feed, err
}

func (s *trackerService) DeleteFeed(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return err
	}

	found := false
	kept := snap.feeds[:0]
	for _, feed := range snap.feeds {
		if feed.ID == id {
			found = true
			continue
		}
		kept = append(kept, feed)
	}
	snap.feeds = kept
	if !found {
		return nil
	}

	return s.persistFeeds(ctx, snap)
}

func (s *trackerService) Feeds(ctx context.Context) ([]entity.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return append([]entity.Feed(nil), snap.feeds...), nil
}

func (s *trackerService) AddRating(ctx context.Context, babyID uuid.UUID, rating int, date time.Time) (*entity.DailyRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	day := entity.DateOnly(date)

	// one rating per (baby, day): overwrite the value in place, keeping the
	// record's identifier
	for i := range snap.ratings {
		r := &snap.ratings[i]
		if r.BabyID == babyID && entity.SameDay(r.Date, day) {
			r.Rating = rating
			updated := *r
			err := s.persistRatings(ctx, snap)
			s.publish(ctx, kafka.EventDayRated, babyID, updated.ID)
			return &updated, err
		}
	}

	record := entity.DailyRating{
		ID:     uuid.New(),
		BabyID: babyID,
		Rating: rating,
		Date:   day,
	}
	snap.ratings = append(snap.ratings, record)

	err = s.persistRatings(ctx, snap)
	s.publish(ctx, kafka.EventDayRated, babyID, record.ID)
	return &record, err
}

func (s *trackerService) Ratings(ctx context.Context) ([]entity.DailyRating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return append([]entity.DailyRating(nil), snap.ratings...), nil
}

func (s *trackerService) TodaysFeedTotal(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return 0, err
	}
	baby := snap.currentBaby()
	if baby == nil {
		return 0, nil
	}
	return feedTotal(snap.feeds, baby.ID, entity.Today()), nil
}

func (s *trackerService) TodaysNapTotal(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return 0, err
	}
	baby := snap.currentBaby()
	if baby == nil {
		return 0, nil
	}
	return napTotal(snap.naps, baby.ID, entity.Today()), nil
}

func (s *trackerService) TodaysRating(ctx context.Context) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return 0, false, err
	}
	baby := snap.currentBaby()
	if baby == nil {
		return 0, false, nil
	}
	rating, ok := ratingFor(snap.ratings, baby.ID, entity.Today())
	return rating, ok, nil
}

func (s *trackerService) WeekSummary(ctx context.Context, babyID uuid.UUID, end time.Time) ([]service.DaySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	endDay := entity.DateOnly(end)
	summaries := make([]service.DaySummary, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := endDay.AddDate(0, 0, -offset)
		summary := service.DaySummary{
			Date:       day,
			NapMinutes: napTotal(snap.naps, babyID, day),
			FeedAmount: feedTotal(snap.feeds, babyID, day),
		}
		if rating, ok := ratingFor(snap.ratings, babyID, day); ok {
			r := rating
			summary.Rating = &r
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func filterNaps(naps []entity.Nap, babyID uuid.UUID) []entity.Nap {
	kept := naps[:0]
	for _, nap := range naps {
		if nap.BabyID != babyID {
			kept = append(kept, nap)
		}
	}
	return kept
}

func filterFeeds(feeds []entity.Feed, babyID uuid.UUID) []entity.Feed {
	kept := feeds[:0]
	for _, feed := range feeds {
		if feed.BabyID != babyID {
			kept = append(kept, feed)
		}
	}
	return kept
}

func filterRatings(ratings []entity.DailyRating, babyID uuid.UUID) []entity.DailyRating {
	kept := ratings[:0]
	for _, rating := range ratings {
		if rating.BabyID != babyID {
			kept = append(kept, rating)
		}
	}
	return kept
}
