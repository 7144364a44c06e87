package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beam-xyz/beambaby/internal/domain/errs"
)

func TestOperationsRequireIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewTrackerStore(nil, nil)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, errs.ErrAuthRequired)

	assert.ErrorIs(t, store.SaveBabies(ctx, nil), errs.ErrAuthRequired)
	assert.ErrorIs(t, store.SaveNaps(ctx, nil), errs.ErrAuthRequired)
	assert.ErrorIs(t, store.SaveFeeds(ctx, nil), errs.ErrAuthRequired)
	assert.ErrorIs(t, store.SaveRatings(ctx, nil), errs.ErrAuthRequired)
}
