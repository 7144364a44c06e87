package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/infrastructure/localstore"
	"github.com/beam-xyz/beambaby/internal/service"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := localstore.New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	tracker := service.NewTrackerService(store, nil, nil, zap.NewNop())
	router := NewRouter(NewTrackerHandler(tracker), nil, NewAuthMiddleware(nil), zap.NewNop())
	return router.Setup()
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = fmt.Sprintf("192.0.2.%d:1234", len(path)%250+1)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func createBaby(t *testing.T, srv http.Handler, name string) entity.Baby {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/babies/create", map[string]interface{}{
		"name":       name,
		"birth_date": "2026-02-01",
		"color":      "mint",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var baby entity.Baby
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &baby))
	return baby
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateAndListBabies(t *testing.T) {
	srv := newTestServer(t)
	baby := createBaby(t, srv, "Ava")
	assert.Equal(t, "Ava", baby.Name)
	assert.Equal(t, entity.ColorMint, baby.Color)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/babies/list", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var babies []entity.Baby
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &babies))
	require.Len(t, babies, 1)
	assert.Equal(t, baby.ID, babies[0].ID)
}

func TestCreateBabyRejectsUnknownColor(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/babies/create", map[string]interface{}{
		"name":       "Ava",
		"birth_date": "2026-02-01",
		"color":      "magenta",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartNapWithoutBaby(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/naps/start", nil)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestNapStartEndFlow(t *testing.T) {
	srv := newTestServer(t)
	createBaby(t, srv, "Ava")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/naps/start", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var started entity.Nap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	assert.Nil(t, started.EndTime)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/naps/end", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ended entity.Nap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ended))
	assert.Equal(t, started.ID, ended.ID)
	assert.NotNil(t, ended.EndTime)

	// ending again is a no-op
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/naps/end", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAddRatingRejectsOutOfRange(t *testing.T) {
	srv := newTestServer(t)
	baby := createBaby(t, srv, "Ava")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/ratings/add", map[string]interface{}{
		"baby_id": baby.ID.String(),
		"rating":  11,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/ratings/add", map[string]interface{}{
		"baby_id": baby.ID.String(),
		"rating":  7,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestTodaySummary(t *testing.T) {
	srv := newTestServer(t)
	baby := createBaby(t, srv, "Ava")

	now := time.Now().Format(time.RFC3339)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/feeds/add", map[string]interface{}{
		"baby_id": baby.ID.String(),
		"amount":  4.0,
		"at":      now,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/summary/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary todaySummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.InDelta(t, 4, summary.FeedAmount, 1e-9)
	assert.Zero(t, summary.NapMinutes)
	assert.Nil(t, summary.Rating)
}

func TestDeleteBabyCascadesOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	baby := createBaby(t, srv, "Ava")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/feeds/add", map[string]interface{}{
		"baby_id": baby.ID.String(),
		"amount":  3.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/babies/delete", map[string]interface{}{
		"id": baby.ID.String(),
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/feeds/list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var feeds []entity.Feed
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feeds))
	assert.Empty(t, feeds)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/babies/current", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
