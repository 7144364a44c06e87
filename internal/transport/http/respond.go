package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/beam-xyz/beambaby/internal/domain/errs"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrPrecondition):
		status = http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrAuthRequired):
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// parseTime accepts RFC 3339 timestamps and bare calendar dates
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
