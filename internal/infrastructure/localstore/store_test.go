package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/repository"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(filepath.Join(dir, "data"), zap.NewNop())
	require.NoError(t, err)
	return store, filepath.Join(dir, "data")
}

func TestLoadEmptyDirectory(t *testing.T) {
	store, _ := newStore(t)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Babies)
	assert.Empty(t, snap.Naps)
	assert.Empty(t, snap.Feeds)
	assert.Empty(t, snap.Ratings)
	assert.Nil(t, snap.Selection.CurrentBabyID)
	assert.Empty(t, snap.Selection.ActiveNaps)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	now := time.Now().Truncate(time.Second)
	end := now.Add(45 * time.Minute)
	imageURL := "https://example.com/ava.png"

	baby := entity.Baby{
		ID:        uuid.New(),
		Name:      "Ava",
		BirthDate: entity.DateOnly(now),
		ImageURL:  &imageURL,
		Color:     entity.ColorLavender,
		CreatedAt: now,
	}
	nap := entity.Nap{ID: uuid.New(), BabyID: baby.ID, StartTime: now, EndTime: &end, Date: entity.DateOnly(now)}
	activeNap := entity.Nap{ID: uuid.New(), BabyID: baby.ID, StartTime: now, Date: entity.DateOnly(now)}
	feed := entity.Feed{ID: uuid.New(), BabyID: baby.ID, Amount: 3.5, Time: now, Date: entity.DateOnly(now)}
	rating := entity.DailyRating{ID: uuid.New(), BabyID: baby.ID, Rating: 8, Date: entity.DateOnly(now)}

	require.NoError(t, store.SaveBabies(ctx, []entity.Baby{baby}))
	require.NoError(t, store.SaveNaps(ctx, []entity.Nap{nap, activeNap}))
	require.NoError(t, store.SaveFeeds(ctx, []entity.Feed{feed}))
	require.NoError(t, store.SaveRatings(ctx, []entity.DailyRating{rating}))

	babyID := baby.ID
	require.NoError(t, store.SaveSelection(ctx, repository.Selection{
		CurrentBabyID: &babyID,
		ActiveNaps:    map[uuid.UUID]entity.Nap{baby.ID: activeNap},
	}))

	snap, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Babies, 1)
	got := snap.Babies[0]
	assert.Equal(t, baby.ID, got.ID)
	assert.Equal(t, baby.Name, got.Name)
	assert.Equal(t, entity.ColorLavender, got.Color)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, imageURL, *got.ImageURL)
	assert.True(t, got.BirthDate.Equal(baby.BirthDate))
	assert.True(t, got.CreatedAt.Equal(baby.CreatedAt))

	require.Len(t, snap.Naps, 2)
	require.NotNil(t, snap.Naps[0].EndTime)
	assert.True(t, snap.Naps[0].EndTime.Equal(end))
	assert.Nil(t, snap.Naps[1].EndTime)

	require.Len(t, snap.Feeds, 1)
	assert.Equal(t, 3.5, snap.Feeds[0].Amount)

	require.Len(t, snap.Ratings, 1)
	assert.Equal(t, 8, snap.Ratings[0].Rating)

	require.NotNil(t, snap.Selection.CurrentBabyID)
	assert.Equal(t, baby.ID, *snap.Selection.CurrentBabyID)
	require.Contains(t, snap.Selection.ActiveNaps, baby.ID)
	assert.Equal(t, activeNap.ID, snap.Selection.ActiveNaps[baby.ID].ID)
}

func TestSaveSelectionClearedRemovesFiles(t *testing.T) {
	ctx := context.Background()
	store, dir := newStore(t)

	id := uuid.New()
	require.NoError(t, store.SaveSelection(ctx, repository.Selection{
		CurrentBabyID: &id,
		ActiveNaps:    map[uuid.UUID]entity.Nap{id: {ID: uuid.New(), BabyID: id, StartTime: time.Now()}},
	}))

	require.FileExists(t, filepath.Join(dir, "currentBabyId.json"))
	require.FileExists(t, filepath.Join(dir, "activeNap.json"))

	require.NoError(t, store.SaveSelection(ctx, repository.Selection{}))

	assert.NoFileExists(t, filepath.Join(dir, "currentBabyId.json"))
	assert.NoFileExists(t, filepath.Join(dir, "activeNap.json"))
}

func TestLoadDiscardsMalformedFiles(t *testing.T) {
	ctx := context.Background()
	store, dir := newStore(t)

	baby := entity.Baby{ID: uuid.New(), Name: "Ava", BirthDate: entity.Today(), Color: entity.ColorPink, CreatedAt: time.Now()}
	require.NoError(t, store.SaveBabies(ctx, []entity.Baby{baby}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "naps.json"), []byte("{not json"), 0600))

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Babies, 1)
	assert.Empty(t, snap.Naps)
}
