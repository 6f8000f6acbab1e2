package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

// MemoryFilmStore keeps films in a mutex-guarded map with a monotonic id
// counter. The genre and MPA reference sets are seeded at construction and
// match the relational seed data.
type MemoryFilmStore struct {
	mu         sync.RWMutex
	films      map[int]*domain.Film
	idSequence int

	genres []domain.Genre
	mpa    []domain.Mpa

	logger   *slog.Logger
	validate *validator.Validate
}

func NewMemoryFilmStore(logger *slog.Logger, validate *validator.Validate) *MemoryFilmStore {
	return &MemoryFilmStore{
		films: make(map[int]*domain.Film),
		genres: []domain.Genre{
			{ID: 1, Name: "Comedy"},
			{ID: 2, Name: "Drama"},
			{ID: 3, Name: "Cartoon"},
			{ID: 4, Name: "Thriller"},
			{ID: 5, Name: "Documentary"},
			{ID: 6, Name: "Action"},
		},
		mpa: []domain.Mpa{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		},
		logger:   logger,
		validate: validate,
	}
}

func (s *MemoryFilmStore) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := s.validate.StructCtx(ctx, film); err != nil {
		return nil, fmt.Errorf("film validation failed: %w", err)
	}
	mpa, err := s.GetMpa(ctx, film.Mpa.ID)
	if err != nil {
		return nil, err
	}
	film.Mpa = *mpa
	genres, err := s.resolveGenres(ctx, film.Genres, false, film.ID)
	if err != nil {
		return nil, err
	}
	film.Genres = genres

	s.mu.Lock()
	defer s.mu.Unlock()

	s.idSequence++
	film.ID = s.idSequence
	stored := cloneFilm(film)
	s.films[stored.ID] = stored

	s.logger.InfoContext(ctx, "film created", slog.Int("filmID", stored.ID), slog.String("name", stored.Name))
	return cloneFilm(stored), nil
}

func (s *MemoryFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Existence is checked before validation: an update of a missing id is
	// NotFound regardless of payload validity.
	if _, ok := s.films[film.ID]; !ok {
		s.logger.WarnContext(ctx, "film to update not found", slog.Int("filmID", film.ID))
		return nil, fmt.Errorf("film with id = %d: %w", film.ID, ErrFilmNotFound)
	}
	if err := s.validate.StructCtx(ctx, film); err != nil {
		return nil, fmt.Errorf("film validation failed: %w", err)
	}
	mpa, err := s.GetMpa(ctx, film.Mpa.ID)
	if err != nil {
		return nil, err
	}
	film.Mpa = *mpa
	genres, err := s.resolveGenres(ctx, film.Genres, true, film.ID)
	if err != nil {
		return nil, err
	}
	film.Genres = genres

	stored := cloneFilm(film)
	s.films[stored.ID] = stored

	s.logger.InfoContext(ctx, "film updated", slog.Int("filmID", stored.ID))
	return cloneFilm(stored), nil
}

// resolveGenres replaces the payload's genre references with the seeded
// reference entries, deduplicated. Unknown ids fail creation but are
// skipped with a warning on update, matching the relational backend.
func (s *MemoryFilmStore) resolveGenres(ctx context.Context, genres []domain.Genre, tolerant bool, filmID int) ([]domain.Genre, error) {
	resolved := make([]domain.Genre, 0, len(genres))
	seen := make(map[int]struct{}, len(genres))
	for _, g := range genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		genre, err := s.GetGenre(ctx, g.ID)
		if err != nil {
			if tolerant {
				s.logger.WarnContext(ctx, "skipping unknown genre id on film update",
					slog.Int("filmID", filmID), slog.Int("genreID", g.ID))
				continue
			}
			return nil, err
		}
		resolved = append(resolved, *genre)
	}
	return resolved, nil
}

func (s *MemoryFilmStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.films, id)
	s.logger.InfoContext(ctx, "film deleted", slog.Int("filmID", id))
	return nil
}

func (s *MemoryFilmStore) Get(ctx context.Context, id int) (*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, fmt.Errorf("film with id = %d: %w", id, ErrFilmNotFound)
	}
	return cloneFilm(film), nil
}

func (s *MemoryFilmStore) FindAll(ctx context.Context) ([]*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Insertion order: ids are assigned monotonically.
	films := make([]*domain.Film, 0, len(s.films))
	for id := 1; id <= s.idSequence; id++ {
		if film, ok := s.films[id]; ok {
			films = append(films, cloneFilm(film))
		}
	}
	return films, nil
}

func (s *MemoryFilmStore) GetGenre(ctx context.Context, id int) (*domain.Genre, error) {
	for _, g := range s.genres {
		if g.ID == id {
			genre := g
			return &genre, nil
		}
	}
	return nil, fmt.Errorf("genre with id = %d: %w", id, ErrGenreNotFound)
}

func (s *MemoryFilmStore) FindAllGenres(ctx context.Context) ([]*domain.Genre, error) {
	genres := make([]*domain.Genre, len(s.genres))
	for i := range s.genres {
		genre := s.genres[i]
		genres[i] = &genre
	}
	return genres, nil
}

func (s *MemoryFilmStore) GetMpa(ctx context.Context, id int) (*domain.Mpa, error) {
	for _, m := range s.mpa {
		if m.ID == id {
			mpa := m
			return &mpa, nil
		}
	}
	return nil, fmt.Errorf("mpa rating with id = %d: %w", id, ErrMpaNotFound)
}

func (s *MemoryFilmStore) FindAllMpa(ctx context.Context) ([]*domain.Mpa, error) {
	ratings := make([]*domain.Mpa, len(s.mpa))
	for i := range s.mpa {
		mpa := s.mpa[i]
		ratings[i] = &mpa
	}
	return ratings, nil
}

func (s *MemoryFilmStore) Like(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.films[filmID]
	if !ok {
		return fmt.Errorf("film with id = %d: %w", filmID, ErrFilmNotFound)
	}
	if containsInt(film.Likes, userID) {
		return nil
	}
	film.Likes = append(film.Likes, userID)
	s.logger.InfoContext(ctx, "film liked", slog.Int("filmID", filmID), slog.Int("userID", userID))
	return nil
}

func (s *MemoryFilmStore) Dislike(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	film, ok := s.films[filmID]
	if !ok {
		return fmt.Errorf("film with id = %d: %w", filmID, ErrFilmNotFound)
	}
	film.Likes = removeInt(film.Likes, userID)
	s.logger.InfoContext(ctx, "film disliked", slog.Int("filmID", filmID), slog.Int("userID", userID))
	return nil
}

// cloneFilm copies the film so callers cannot mutate stored state. Slices
// are always non-nil so the JSON rendering is [] rather than null.
func cloneFilm(film *domain.Film) *domain.Film {
	clone := *film
	clone.Genres = append([]domain.Genre{}, film.Genres...)
	clone.Likes = append([]int{}, film.Likes...)
	return &clone
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func removeInt(values []int, v int) []int {
	out := values[:0]
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
