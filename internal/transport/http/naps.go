package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
)

// StartNap begins tracking a nap for the current baby
func (h *TrackerHandler) StartNap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	nap, err := h.tracker.StartNap(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, nap)
}

// EndNap ends the current baby's active nap. Without one the request
// succeeds with no content.
func (h *TrackerHandler) EndNap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	nap, err := h.tracker.EndNap(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if nap == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, nap)
}

// AddNap logs a completed nap with explicit start and end times
func (h *TrackerHandler) AddNap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		BabyID    string  `json:"baby_id"`
		StartTime string  `json:"start_time"`
		EndTime   string  `json:"end_time"`
		Date      *string `json:"date"`
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
	start, err := parseTime(req.StartTime)
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}
	end, err := parseTime(req.EndTime)
	if err != nil {
		http.Error(w, "invalid end_time", http.StatusBadRequest)
		return
	}

	date := entity.DateOnly(start)
	if req.Date != nil {
		d, err := parseTime(*req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		date = d
	}

	nap, err := h.tracker.AddNap(r.Context(), babyID, start, end, date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, nap)
}

// DeleteNap removes a logged nap
func (h *TrackerHandler) DeleteNap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.tracker.DeleteNap(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListNaps returns naps, optionally filtered by baby_id
func (h *TrackerHandler) ListNaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	naps, err := h.tracker.Naps(r.Context())
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
		filtered := make([]entity.Nap, 0, len(naps))
		for _, n := range naps {
			if n.BabyID == babyID {
				filtered = append(filtered, n)
			}
		}
		naps = filtered
	}

	writeJSON(w, http.StatusOK, naps)
}

// ActiveNaps returns all naps currently in progress
func (h *TrackerHandler) ActiveNaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	naps, err := h.tracker.ActiveNaps(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, naps)
}
