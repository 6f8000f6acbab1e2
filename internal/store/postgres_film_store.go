package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

// PostgresFilmStore implements FilmStore on PostgreSQL. Multi-statement
// operations (create with genre rows, update with the genre diff) run in a
// single transaction.
type PostgresFilmStore struct {
	db       *sqlx.DB
	logger   *slog.Logger
	validate *validator.Validate
}

func NewPostgresFilmStore(db *sqlx.DB, logger *slog.Logger, validate *validator.Validate) (*PostgresFilmStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresFilmStore{db: db, logger: logger, validate: validate}, nil
}

// filmRow mirrors the film table; mpa, genres and likes are hydrated from
// the associated tables.
type filmRow struct {
	ID          int         `db:"id"`
	Name        string      `db:"name"`
	ReleaseDate domain.Date `db:"release_date"`
	Description string      `db:"description"`
	Duration    int         `db:"duration"`
	Rate        int         `db:"rate"`
	RatingID    int         `db:"rating_id"`
}

func (s *PostgresFilmStore) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := s.validate.StructCtx(ctx, film); err != nil {
		return nil, fmt.Errorf("film validation failed: %w", err)
	}
	if _, err := s.GetMpa(ctx, film.Mpa.ID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO film (name, release_date, description, duration, rate, rating_id)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	s.logger.DebugContext(ctx, "executing create film query", slog.String("name", film.Name))
	if err := tx.GetContext(ctx, &film.ID, query,
		film.Name, film.ReleaseDate, film.Description, film.Duration, film.Rate, film.Mpa.ID,
	); err != nil {
		s.logger.ErrorContext(ctx, "failed to create film in DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create film: %w", err)
	}

	for _, genre := range film.Genres {
		if err := s.insertFilmGenre(ctx, tx, film.ID, genre.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit create film: %w", err)
	}
	s.logger.InfoContext(ctx, "film created in DB", slog.Int("filmID", film.ID))
	return s.Get(ctx, film.ID)
}

func (s *PostgresFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if _, err := s.Get(ctx, film.ID); err != nil {
		return nil, err
	}
	if err := s.validate.StructCtx(ctx, film); err != nil {
		return nil, fmt.Errorf("film validation failed: %w", err)
	}
	if _, err := s.GetMpa(ctx, film.Mpa.ID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE film SET name = $1, release_date = $2, description = $3, duration = $4, rate = $5, rating_id = $6
              WHERE id = $7`
	s.logger.DebugContext(ctx, "executing update film query", slog.Int("filmID", film.ID))
	if _, err := tx.ExecContext(ctx, query,
		film.Name, film.ReleaseDate, film.Description, film.Duration, film.Rate, film.Mpa.ID, film.ID,
	); err != nil {
		s.logger.ErrorContext(ctx, "failed to update film in DB", slog.Int("filmID", film.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update film: %w", err)
	}

	if err := s.syncFilmGenres(ctx, tx, film); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update film: %w", err)
	}
	s.logger.InfoContext(ctx, "film updated in DB", slog.Int("filmID", film.ID))
	return s.Get(ctx, film.ID)
}

// syncFilmGenres applies the symmetric difference between the stored genre
// set and the incoming one, in ascending genre id order. Unknown genre ids
// in the payload are skipped with a warning, not surfaced as errors.
func (s *PostgresFilmStore) syncFilmGenres(ctx context.Context, tx *sqlx.Tx, film *domain.Film) error {
	var storedIDs []int
	if err := tx.SelectContext(ctx, &storedIDs,
		`SELECT genre_id FROM film_genre WHERE film_id = $1`, film.ID); err != nil {
		return fmt.Errorf("failed to read film genres: %w", err)
	}

	incoming := make(map[int]struct{}, len(film.Genres))
	for _, g := range film.Genres {
		incoming[g.ID] = struct{}{}
	}
	stored := make(map[int]struct{}, len(storedIDs))
	for _, id := range storedIDs {
		stored[id] = struct{}{}
	}

	var toRemove, toAdd []int
	for id := range stored {
		if _, keep := incoming[id]; !keep {
			toRemove = append(toRemove, id)
		}
	}
	for id := range incoming {
		if _, exists := stored[id]; !exists {
			toAdd = append(toAdd, id)
		}
	}
	sort.Ints(toRemove)
	sort.Ints(toAdd)

	for _, id := range toRemove {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM film_genre WHERE film_id = $1 AND genre_id = $2`, film.ID, id); err != nil {
			return fmt.Errorf("failed to remove film genre: %w", err)
		}
	}
	for _, id := range toAdd {
		var genreExists bool
		if err := tx.GetContext(ctx, &genreExists,
			`SELECT EXISTS (SELECT 1 FROM genre WHERE id = $1)`, id); err != nil {
			return fmt.Errorf("failed to check genre existence: %w", err)
		}
		if !genreExists {
			s.logger.WarnContext(ctx, "skipping unknown genre id on film update",
				slog.Int("filmID", film.ID), slog.Int("genreID", id))
			continue
		}
		if err := s.insertFilmGenre(ctx, tx, film.ID, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresFilmStore) insertFilmGenre(ctx context.Context, tx *sqlx.Tx, filmID, genreID int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO film_genre (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, filmID, genreID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			s.logger.WarnContext(ctx, "genre does not exist", slog.Int("genreID", genreID))
			return fmt.Errorf("genre with id = %d: %w", genreID, ErrGenreNotFound)
		}
		s.logger.ErrorContext(ctx, "failed to insert film genre", slog.Int("filmID", filmID), slog.Int("genreID", genreID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert film genre: %w", err)
	}
	return nil
}

func (s *PostgresFilmStore) Delete(ctx context.Context, id int) error {
	s.logger.DebugContext(ctx, "executing delete film query", slog.Int("filmID", id))
	if _, err := s.db.ExecContext(ctx, `DELETE FROM film WHERE id = $1`, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete film from DB", slog.Int("filmID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete film: %w", err)
	}
	return nil
}

func (s *PostgresFilmStore) Get(ctx context.Context, id int) (*domain.Film, error) {
	query := `SELECT id, name, release_date, description, duration, rate, rating_id FROM film WHERE id = $1`
	var row filmRow
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "film not found in DB", slog.Int("filmID", id))
			return nil, fmt.Errorf("film with id = %d: %w", id, ErrFilmNotFound)
		}
		s.logger.ErrorContext(ctx, "failed to get film from DB", slog.Int("filmID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get film by id: %w", err)
	}
	return s.hydrateFilm(ctx, &row)
}

func (s *PostgresFilmStore) FindAll(ctx context.Context) ([]*domain.Film, error) {
	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, name, release_date, description, duration, rate, rating_id FROM film`); err != nil {
		s.logger.ErrorContext(ctx, "failed to list films from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list films: %w", err)
	}

	films := make([]*domain.Film, 0, len(rows))
	for i := range rows {
		film, err := s.hydrateFilm(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		films = append(films, film)
	}
	return films, nil
}

func (s *PostgresFilmStore) hydrateFilm(ctx context.Context, row *filmRow) (*domain.Film, error) {
	mpa, err := s.GetMpa(ctx, row.RatingID)
	if err != nil {
		return nil, err
	}

	genres := []domain.Genre{}
	if err := s.db.SelectContext(ctx, &genres,
		`SELECT g.id, g.name FROM film_genre fg
         INNER JOIN genre g ON g.id = fg.genre_id
         WHERE fg.film_id = $1
         ORDER BY g.id`, row.ID); err != nil {
		return nil, fmt.Errorf("failed to read film genres: %w", err)
	}

	likes := []int{}
	if err := s.db.SelectContext(ctx, &likes,
		`SELECT user_id FROM favorite_films WHERE film_id = $1 ORDER BY user_id`, row.ID); err != nil {
		return nil, fmt.Errorf("failed to read film likes: %w", err)
	}

	return &domain.Film{
		ID:          row.ID,
		Name:        row.Name,
		ReleaseDate: row.ReleaseDate,
		Description: row.Description,
		Duration:    row.Duration,
		Rate:        row.Rate,
		Mpa:         *mpa,
		Genres:      genres,
		Likes:       likes,
	}, nil
}

func (s *PostgresFilmStore) GetGenre(ctx context.Context, id int) (*domain.Genre, error) {
	var genre domain.Genre
	if err := s.db.GetContext(ctx, &genre, `SELECT id, name FROM genre WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("genre with id = %d: %w", id, ErrGenreNotFound)
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}
	return &genre, nil
}

func (s *PostgresFilmStore) FindAllGenres(ctx context.Context) ([]*domain.Genre, error) {
	var genres []*domain.Genre
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genre ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *PostgresFilmStore) GetMpa(ctx context.Context, id int) (*domain.Mpa, error) {
	var mpa domain.Mpa
	if err := s.db.GetContext(ctx, &mpa, `SELECT id, name FROM rating WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("mpa rating with id = %d: %w", id, ErrMpaNotFound)
		}
		return nil, fmt.Errorf("failed to get mpa rating by id: %w", err)
	}
	return &mpa, nil
}

func (s *PostgresFilmStore) FindAllMpa(ctx context.Context) ([]*domain.Mpa, error) {
	var ratings []*domain.Mpa
	if err := s.db.SelectContext(ctx, &ratings, `SELECT id, name FROM rating ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *PostgresFilmStore) Like(ctx context.Context, filmID, userID int) error {
	s.logger.DebugContext(ctx, "executing like film query", slog.Int("filmID", filmID), slog.Int("userID", userID))
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO favorite_films (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, filmID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to like film in DB", slog.Int("filmID", filmID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to like film: %w", err)
	}
	return nil
}

func (s *PostgresFilmStore) Dislike(ctx context.Context, filmID, userID int) error {
	s.logger.DebugContext(ctx, "executing dislike film query", slog.Int("filmID", filmID), slog.Int("userID", userID))
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favorite_films WHERE film_id = $1 AND user_id = $2`, filmID, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to dislike film in DB", slog.Int("filmID", filmID), slog.Int("userID", userID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to dislike film: %w", err)
	}
	return nil
}
