package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/KseniyaA/java-filmorate/internal/domain"
	"github.com/KseniyaA/java-filmorate/internal/service"
)

// FilmHandler translates HTTP requests into FilmService calls. It holds no
// business logic; domain failures propagate unchanged to respondError.
type FilmHandler struct {
	films  *service.FilmService
	logger *slog.Logger
}

func NewFilmHandler(films *service.FilmService, logger *slog.Logger) *FilmHandler {
	return &FilmHandler{films: films, logger: logger}
}

func (h *FilmHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var film domain.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode film body", slog.String("error", err.Error()))
		respondBadRequest(w, r, h.logger, "invalid request payload")
		return
	}
	defer r.Body.Close()
	h.logger.InfoContext(ctx, "POST /films", slog.String("name", film.Name))

	created, err := h.films.Create(ctx, &film)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, created)
}

func (h *FilmHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var film domain.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode film body", slog.String("error", err.Error()))
		respondBadRequest(w, r, h.logger, "invalid request payload")
		return
	}
	defer r.Body.Close()
	h.logger.InfoContext(ctx, "PUT /films", slog.Int("filmID", film.ID))

	updated, err := h.films.Update(ctx, &film)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, updated)
}

func (h *FilmHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var film domain.Film
	if err := json.NewDecoder(r.Body).Decode(&film); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode film body", slog.String("error", err.Error()))
		respondBadRequest(w, r, h.logger, "invalid request payload")
		return
	}
	defer r.Body.Close()
	h.logger.InfoContext(ctx, "DELETE /films", slog.Int("filmID", film.ID))

	if err := h.films.Delete(ctx, film.ID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

func (h *FilmHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "GET /films/{id}", slog.Int("filmID", id))

	film, err := h.films.Get(ctx, id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, film)
}

func (h *FilmHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "GET /films")

	films, err := h.films.FindAll(ctx)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, films)
}

func (h *FilmHandler) Like(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filmID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, h.logger, "userId")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "PUT /films/{id}/like/{userId}", slog.Int("filmID", filmID), slog.Int("userID", userID))

	if err := h.films.Like(ctx, filmID, userID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

func (h *FilmHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filmID, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, h.logger, "userId")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "DELETE /films/{id}/like/{userId}", slog.Int("filmID", filmID), slog.Int("userID", userID))

	if err := h.films.Dislike(ctx, filmID, userID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, nil)
}

func (h *FilmHandler) Popular(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count := 0
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil {
			respondBadRequest(w, r, h.logger, "count must be an integer")
			return
		}
		count = parsed
	}
	h.logger.InfoContext(ctx, "GET /films/popular", slog.Int("count", count))

	films, err := h.films.PopularFilms(ctx, count)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, films)
}

// pathInt parses an integer path variable, answering 400 on garbage input.
func pathInt(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondBadRequest(w, r, logger, "path parameter "+name+" must be an integer")
		return 0, false
	}
	return value, true
}
