package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

// expectFilmHydration queues the rating/genre/like lookups that follow
// every film row read.
func expectFilmHydration(mock sqlmock.Sqlmock, filmID int) {
	mock.ExpectQuery(`SELECT id, name FROM rating WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "R"))
	mock.ExpectQuery(`SELECT g.id, g.name FROM film_genre`).
		WithArgs(filmID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(6, "Action"))
	mock.ExpectQuery(`SELECT user_id FROM favorite_films`).
		WithArgs(filmID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(5))
}

func TestPostgresFilmStoreGet(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresFilmStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, name, release_date, description, duration, rate, rating_id FROM film WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "release_date", "description", "duration", "rate", "rating_id"}).
			AddRow(1, "Matrix", time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC), "test", 136, 0, 4))
	expectFilmHydration(mock, 1)

	film, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Matrix", film.Name)
	assert.Equal(t, domain.Mpa{ID: 4, Name: "R"}, film.Mpa)
	assert.Equal(t, []domain.Genre{{ID: 6, Name: "Action"}}, film.Genres)
	assert.Equal(t, []int{5}, film.Likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFilmStoreGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresFilmStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, name, release_date, description, duration, rate, rating_id FROM film WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrFilmNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFilmStoreCreateCommitsFilmAndGenres(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresFilmStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	// MPA existence check before the transaction.
	mock.ExpectQuery(`SELECT id, name FROM rating WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "R"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO film`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO film_genre`).
		WithArgs(1, 6).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Re-read of the stored film.
	mock.ExpectQuery(`SELECT id, name, release_date, description, duration, rate, rating_id FROM film WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "release_date", "description", "duration", "rate", "rating_id"}).
			AddRow(1, "Matrix", time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC), "test film", 136, 0, 4))
	expectFilmHydration(mock, 1)

	created, err := s.Create(context.Background(), testFilm("Matrix"))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFilmStoreUpdateSyncsGenres(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresFilmStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	filmColumns := []string{"id", "name", "release_date", "description", "duration", "rate", "rating_id"}
	newFilmRows := func() *sqlmock.Rows {
		return sqlmock.NewRows(filmColumns).
			AddRow(1, "Matrix", time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC), "test film", 136, 0, 4)
	}

	// Existence read of the stored film, with genres {1, 2}.
	mock.ExpectQuery(`SELECT id, name, release_date, description, duration, rate, rating_id FROM film WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(newFilmRows())
	mock.ExpectQuery(`SELECT id, name FROM rating WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "R"))
	mock.ExpectQuery(`SELECT g.id, g.name FROM film_genre`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Comedy").AddRow(2, "Drama"))
	mock.ExpectQuery(`SELECT user_id FROM favorite_films`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	// MPA existence check.
	mock.ExpectQuery(`SELECT id, name FROM rating WHERE id = \$1`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "R"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE film SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Genre diff: stored {1, 2} against incoming {2, 3, 99} removes 1,
	// inserts 3 and skips the unknown 99.
	mock.ExpectQuery(`SELECT genre_id FROM film_genre WHERE film_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"genre_id"}).AddRow(1).AddRow(2))
	mock.ExpectExec(`DELETE FROM film_genre WHERE film_id = \$1 AND genre_id = \$2`).
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM genre WHERE id = \$1\)`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`INSERT INTO film_genre`).
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM genre WHERE id = \$1\)`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectCommit()

	// Re-read of the updated film.
	mock.ExpectQuery(`SELECT id, name, release_date, description, duration, rate, rating_id FROM film WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(newFilmRows())
	mock.ExpectQuery(`SELECT id, name FROM rating WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "R"))
	mock.ExpectQuery(`SELECT g.id, g.name FROM film_genre`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Drama").AddRow(3, "Cartoon"))
	mock.ExpectQuery(`SELECT user_id FROM favorite_films`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	film := testFilm("Matrix")
	film.ID = 1
	film.Genres = []domain.Genre{{ID: 2}, {ID: 3}, {ID: 99}}

	updated, err := s.Update(context.Background(), film)
	require.NoError(t, err)
	assert.Equal(t, []domain.Genre{{ID: 2, Name: "Drama"}, {ID: 3, Name: "Cartoon"}}, updated.Genres)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFilmStoreCreateRejectsInvalid(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresFilmStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	film := testFilm("Matrix")
	film.Name = ""
	_, err = s.Create(context.Background(), film)
	assert.Error(t, err)
	// Validation fails before any SQL runs.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFilmStoreLikeIsIdempotentInsert(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresFilmStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO favorite_films`).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Like(context.Background(), 1, 5))

	// ON CONFLICT DO NOTHING: the repeat affects zero rows but succeeds.
	mock.ExpectExec(`INSERT INTO favorite_films`).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.Like(context.Background(), 1, 5))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFilmStoreGetGenreNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresFilmStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, name FROM genre WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = s.GetGenre(context.Background(), 99)
	assert.ErrorIs(t, err, ErrGenreNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
