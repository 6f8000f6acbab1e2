package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KseniyaA/java-filmorate/internal/domain"
	"github.com/KseniyaA/java-filmorate/internal/store"
)

// DefaultPopularCount is the number of films returned by PopularFilms when
// the caller does not supply a positive count.
const DefaultPopularCount = 10

// FilmService orchestrates film operations over the selected stores. It
// also needs the user store so that likes reference existing users.
type FilmService struct {
	films  store.FilmStore
	users  store.UserStore
	logger *slog.Logger
}

func NewFilmService(films store.FilmStore, users store.UserStore, logger *slog.Logger) *FilmService {
	return &FilmService{films: films, users: users, logger: logger}
}

func (s *FilmService) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	return s.films.Create(ctx, film)
}

func (s *FilmService) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	return s.films.Update(ctx, film)
}

func (s *FilmService) Delete(ctx context.Context, id int) error {
	return s.films.Delete(ctx, id)
}

func (s *FilmService) Get(ctx context.Context, id int) (*domain.Film, error) {
	return s.films.Get(ctx, id)
}

func (s *FilmService) FindAll(ctx context.Context) ([]*domain.Film, error) {
	return s.films.FindAll(ctx)
}

func (s *FilmService) GetGenre(ctx context.Context, id int) (*domain.Genre, error) {
	return s.films.GetGenre(ctx, id)
}

func (s *FilmService) FindAllGenres(ctx context.Context) ([]*domain.Genre, error) {
	return s.films.FindAllGenres(ctx)
}

func (s *FilmService) GetMpa(ctx context.Context, id int) (*domain.Mpa, error) {
	return s.films.GetMpa(ctx, id)
}

func (s *FilmService) FindAllMpa(ctx context.Context) ([]*domain.Mpa, error) {
	return s.films.FindAllMpa(ctx)
}

// Like records a like after checking that both the film and the user exist.
func (s *FilmService) Like(ctx context.Context, filmID, userID int) error {
	if _, err := s.films.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	return s.films.Like(ctx, filmID, userID)
}

func (s *FilmService) Dislike(ctx context.Context, filmID, userID int) error {
	if _, err := s.films.Get(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	return s.films.Dislike(ctx, filmID, userID)
}

// PopularFilms returns at most count films ordered by like count,
// descending. The sort is stable over the store's native ordering, so ties
// keep that order. A non-positive count falls back to DefaultPopularCount.
func (s *FilmService) PopularFilms(ctx context.Context, count int) ([]*domain.Film, error) {
	if count <= 0 {
		count = DefaultPopularCount
	}
	films, err := s.films.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(films, func(i, j int) bool {
		return len(films[i].Likes) > len(films[j].Likes)
	})
	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}
