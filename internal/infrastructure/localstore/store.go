// Package localstore persists the tracker snapshot as JSON files on the
// local device, one file per collection key. Absent files mean empty
// collections; unreadable files are discarded rather than surfaced as
// errors, so a damaged device store degrades to a fresh one.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/errs"
	"github.com/beam-xyz/beambaby/internal/domain/repository"
)

// Storage keys. Each maps to <dir>/<key>.json.
const (
	keyBabies        = "babies"
	keyNaps          = "naps"
	keyFeeds         = "feeds"
	keyRatings       = "ratings"
	keyCurrentBabyID = "currentBabyId"
	keyActiveNap     = "activeNap"
)

// Store is the on-device persistence adapter
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a local store rooted at dir, creating it if needed
func New(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read unmarshals one key into v, best effort. Absent and malformed files
// both leave v untouched.
func (s *Store) read(key string, v any) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read stored collection",
				zap.String("key", key), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("discarding malformed stored collection",
			zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) write(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0600); err != nil {
		return fmt.Errorf("write %s: %w: %w", key, errs.ErrPersistence, err)
	}
	return nil
}

func (s *Store) remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w: %w", key, errs.ErrPersistence, err)
	}
	return nil
}

// Load reads the full snapshot from disk
func (s *Store) Load(_ context.Context) (*repository.Snapshot, error) {
	var (
		babies     []entity.Baby
		naps       []entity.Nap
		feeds      []entity.Feed
		ratings    []entity.DailyRating
		currentID  *uuid.UUID
		activeNaps map[uuid.UUID]entity.Nap
	)

	s.read(keyBabies, &babies)
	s.read(keyNaps, &naps)
	s.read(keyFeeds, &feeds)
	s.read(keyRatings, &ratings)
	s.read(keyCurrentBabyID, &currentID)
	s.read(keyActiveNap, &activeNaps)

	if activeNaps == nil {
		activeNaps = make(map[uuid.UUID]entity.Nap)
	}

	return &repository.Snapshot{
		Babies:  babies,
		Naps:    naps,
		Feeds:   feeds,
		Ratings: ratings,
		Selection: repository.Selection{
			CurrentBabyID: currentID,
			ActiveNaps:    activeNaps,
		},
	}, nil
}

// SaveBabies persists the babies collection
func (s *Store) SaveBabies(_ context.Context, babies []entity.Baby) error {
	return s.write(keyBabies, babies)
}

// SaveNaps persists the naps collection
func (s *Store) SaveNaps(_ context.Context, naps []entity.Nap) error {
	return s.write(keyNaps, naps)
}

// SaveFeeds persists the feeds collection
func (s *Store) SaveFeeds(_ context.Context, feeds []entity.Feed) error {
	return s.write(keyFeeds, feeds)
}

// SaveRatings persists the ratings collection
func (s *Store) SaveRatings(_ context.Context, ratings []entity.DailyRating) error {
	return s.write(keyRatings, ratings)
}

// SaveSelection persists the current-baby id and the active naps. Cleared
// state removes the backing files, so absence keeps meaning "none".
func (s *Store) SaveSelection(_ context.Context, sel repository.Selection) error {
	var err error
	if sel.CurrentBabyID == nil {
		err = s.remove(keyCurrentBabyID)
	} else {
		err = s.write(keyCurrentBabyID, sel.CurrentBabyID)
	}

	if len(sel.ActiveNaps) == 0 {
		if rmErr := s.remove(keyActiveNap); err == nil {
			err = rmErr
		}
		return err
	}
	if wrErr := s.write(keyActiveNap, sel.ActiveNaps); err == nil {
		err = wrErr
	}
	return err
}
