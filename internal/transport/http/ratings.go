package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/pkg/validation"
)

// AddRating records a baby's rating for a calendar day, overwriting any
// rating already recorded for that day
func (h *TrackerHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		BabyID string  `json:"baby_id"`
		Rating int     `json:"rating"`
		Date   *string `json:"date"`
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

	if err := validation.ValidateRating(req.Rating); err != nil {
		writeError(w, err)
		return
	}

	date := entity.Today()
	if req.Date != nil {
		d, err := parseTime(*req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		date = d
	}

	rating, err := h.tracker.AddRating(r.Context(), babyID, req.Rating, date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rating)
}

// ListRatings returns ratings, optionally filtered by baby_id
func (h *TrackerHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ratings, err := h.tracker.Ratings(r.Context())
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
		filtered := make([]entity.DailyRating, 0, len(ratings))
		for _, rt := range ratings {
			if rt.BabyID == babyID {
				filtered = append(filtered, rt)
			}
		}
		ratings = filtered
	}

	writeJSON(w, http.StatusOK, ratings)
}
