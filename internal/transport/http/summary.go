package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

type todaySummaryResponse struct {
	Date       time.Time `json:"date"`
	NapMinutes float64   `json:"nap_minutes"`
	FeedAmount float64   `json:"feed_amount"`
	Rating     *int      `json:"rating,omitempty"`
}

// TodaySummary returns today's aggregates for the current baby
func (h *TrackerHandler) TodaySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	napMinutes, err := h.tracker.TodaysNapTotal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	feedAmount, err := h.tracker.TodaysFeedTotal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rating, ok, err := h.tracker.TodaysRating(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := todaySummaryResponse{
		Date:       entity.Today(),
		NapMinutes: napMinutes,
		FeedAmount: feedAmount,
	}
	if ok {
		resp.Rating = &rating
	}

	writeJSON(w, http.StatusOK, resp)
}

// WeekSummary returns per-day aggregates for the seven days ending at
// the requested date (today by default)
func (h *TrackerHandler) WeekSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rawID := r.URL.Query().Get("baby_id")
	if rawID == "" {
		http.Error(w, "baby_id is required", http.StatusBadRequest)
		return
	}
	babyID, err := uuid.Parse(rawID)
	if err != nil {
		http.Error(w, "invalid baby_id", http.StatusBadRequest)
		return
	}

	end := entity.Today()
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := parseTime(raw)
		if err != nil {
			http.Error(w, "invalid end", http.StatusBadRequest)
			return
		}
		end = t
	}

	summary, err := h.tracker.WeekSummary(r.Context(), babyID, end)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
