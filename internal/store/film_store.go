package store

import (
	"context"
	"errors"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

var (
	ErrFilmNotFound  = errors.New("film not found")
	ErrGenreNotFound = errors.New("genre not found")
	ErrMpaNotFound   = errors.New("mpa rating not found")
)

// FilmStore defines the persistence contract for films and the genre/MPA
// reference data. Two implementations exist: MemoryFilmStore and
// PostgresFilmStore, selected at startup.
type FilmStore interface {
	Create(ctx context.Context, film *domain.Film) (*domain.Film, error)
	Update(ctx context.Context, film *domain.Film) (*domain.Film, error)
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*domain.Film, error)
	FindAll(ctx context.Context) ([]*domain.Film, error)

	GetGenre(ctx context.Context, id int) (*domain.Genre, error)
	FindAllGenres(ctx context.Context) ([]*domain.Genre, error)
	GetMpa(ctx context.Context, id int) (*domain.Mpa, error)
	FindAllMpa(ctx context.Context) ([]*domain.Mpa, error)

	// Like records that a user liked a film. Repeated likes are idempotent.
	Like(ctx context.Context, filmID, userID int) error
	// Dislike removes the like if present, and is a no-op otherwise.
	Dislike(ctx context.Context, filmID, userID int) error
}
