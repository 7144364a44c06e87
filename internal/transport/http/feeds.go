package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

// AddFeed logs a feed for a baby
func (h *TrackerHandler) AddFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		BabyID string   `json:"baby_id"`
		Amount float64  `json:"amount"`
		At     *string  `json:"at"`
		Date   *string  `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	babyID, err := uuid.Parse(req.BabyID)
	if err != nil {
		http.Error(w, "invalid baby_id", http.StatusBadRequest)
		return
	}

	at := time.Now()
	if req.At != nil {
		t, err := parseTime(*req.At)
		if err != nil {
			http.Error(w, "invalid at", http.StatusBadRequest)
			return
		}
		at = t
	}

	date := entity.DateOnly(at)
	if req.Date != nil {
		d, err := parseTime(*req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		date = d
	}

	feed, err := h.tracker.AddFeed(r.Context(), babyID, req.Amount, at, date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, feed)
}

// DeleteFeed removes a logged feed
func (h *TrackerHandler) DeleteFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.tracker.DeleteFeed(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFeeds returns feeds, optionally filtered by baby_id
func (h *TrackerHandler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	feeds, err := h.tracker.Feeds(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if raw := r.URL.Query().Get("baby_id"); raw != "" {
		babyID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid baby_id", http.StatusBadRequest)
			return
		}
		filtered := make([]entity.Feed, 0, len(feeds))
		for _, f := range feeds {
			if f.BabyID == babyID {
				filtered = append(filtered, f)
			}
		}
		feeds = filtered
	}

	writeJSON(w, http.StatusOK, feeds)
}
