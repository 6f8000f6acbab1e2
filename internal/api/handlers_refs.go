package api

import (
	"log/slog"
	"net/http"
)

// Genre and MPA reference lookups live on FilmHandler: the reference data
// belongs to the film store.

func (h *FilmHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "GET /genres/{id}", slog.Int("genreID", id))

	genre, err := h.films.GetGenre(ctx, id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, genre)
}

func (h *FilmHandler) FindAllGenres(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "GET /genres")

	genres, err := h.films.FindAllGenres(ctx)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, genres)
}

func (h *FilmHandler) GetMpa(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathInt(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.InfoContext(ctx, "GET /mpa/{id}", slog.Int("mpaID", id))

	mpa, err := h.films.GetMpa(ctx, id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, mpa)
}

func (h *FilmHandler) FindAllMpa(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "GET /mpa")

	ratings, err := h.films.FindAllMpa(ctx)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, ratings)
}
