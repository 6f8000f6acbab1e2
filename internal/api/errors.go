package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/KseniyaA/java-filmorate/internal/store"
)

// ErrorResponse is the body of every error reply: a short category label
// and the original error's message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.ErrorContext(r.Context(), "failed to encode JSON response",
				slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

// respondError maps the domain error taxonomy to HTTP statuses:
// validation failures to 400, the not-found kinds to 404, anything else
// to 500.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErrs):
		respondJSON(w, r, logger, http.StatusBadRequest, ErrorResponse{Error: "validation error", Message: err.Error()})
	case errors.Is(err, store.ErrFilmNotFound):
		respondJSON(w, r, logger, http.StatusNotFound, ErrorResponse{Error: "film not found", Message: err.Error()})
	case errors.Is(err, store.ErrGenreNotFound):
		respondJSON(w, r, logger, http.StatusNotFound, ErrorResponse{Error: "genre not found", Message: err.Error()})
	case errors.Is(err, store.ErrUserNotFound):
		respondJSON(w, r, logger, http.StatusNotFound, ErrorResponse{Error: "user not found", Message: err.Error()})
	case errors.Is(err, store.ErrMpaNotFound):
		respondJSON(w, r, logger, http.StatusNotFound, ErrorResponse{Error: "mpa rating not found", Message: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "unexpected error", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		respondJSON(w, r, logger, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}

func respondBadRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, message string) {
	respondJSON(w, r, logger, http.StatusBadRequest, ErrorResponse{Error: "validation error", Message: message})
}
