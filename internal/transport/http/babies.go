package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/beam-xyz/beambaby/internal/domain/entity"
	"github.com/beam-xyz/beambaby/internal/domain/service"
)

// TrackerHandler handles baby activity HTTP requests
type TrackerHandler struct {
	tracker service.Tracker
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(tracker service.Tracker) *TrackerHandler {
	return &TrackerHandler{tracker: tracker}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// CreateBaby handles baby profile creation
func (h *TrackerHandler) CreateBaby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name      string  `json:"name"`
		BirthDate string  `json:"birth_date"`
		Color     string  `json:"color"`
		ImageURL  *string `json:"image_url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	birthDate, err := parseTime(req.BirthDate)
	if err != nil {
		http.Error(w, "invalid birth_date", http.StatusBadRequest)
		return
	}

	baby, err := h.tracker.AddBaby(r.Context(), req.Name, birthDate, entity.Color(req.Color), req.ImageURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, baby)
}

// ListBabies returns all baby profiles
func (h *TrackerHandler) ListBabies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	babies, err := h.tracker.Babies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, babies)
}

// UpdateBaby merges the supplied fields into a baby profile
func (h *TrackerHandler) UpdateBaby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID        string  `json:"id"`
		Name      *string `json:"name"`
		BirthDate *string `json:"birth_date"`
		Color     *string `json:"color"`
		ImageURL  *string `json:"image_url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		http.Error(w, "invalid baby id", http.StatusBadRequest)
		return
	}

	var update entity.BabyUpdate
	update.Name = req.Name
	update.ImageURL = req.ImageURL
	if req.BirthDate != nil {
		birthDate, err := parseTime(*req.BirthDate)
		if err != nil {
			http.Error(w, "invalid birth_date", http.StatusBadRequest)
			return
		}
		update.BirthDate = &birthDate
	}
	if req.Color != nil {
		color := entity.Color(*req.Color)
		update.Color = &color
	}

	baby, err := h.tracker.EditBaby(r.Context(), id, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, baby)
}

// DeleteBaby removes a baby profile and everything it owns
func (h *TrackerHandler) DeleteBaby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.tracker.DeleteBaby(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SelectBaby makes a baby the current one
func (h *TrackerHandler) SelectBaby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.tracker.SelectBaby(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CurrentBaby returns the currently selected baby
func (h *TrackerHandler) CurrentBaby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	baby, err := h.tracker.CurrentBaby(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if baby == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no baby selected"})
		return
	}

	writeJSON(w, http.StatusOK, baby)
}

// decodeID reads the common {"id": "..."} request body
func decodeID(r *http.Request) (uuid.UUID, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return uuid.Nil, errors.New("invalid id")
	}
	return id, nil
}
