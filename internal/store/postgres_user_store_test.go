package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

func expectUserRow(mock sqlmock.Sqlmock, id int, login string) {
	mock.ExpectQuery(`SELECT id, email, login, name, birthday FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "login", "name", "birthday"}).
			AddRow(id, login+"@example.com", login, login, time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(`SELECT user_to FROM friendship WHERE user_from = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"user_to"}))
}

func TestPostgresUserStoreCreateDefaultsNameAndReturnsStored(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresUserStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("neo@example.com", "neo", "neo", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	expectUserRow(mock, 7, "neo")

	created, err := s.Create(context.Background(), testUser("neo"))
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, "neo", created.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStoreGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresUserStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, login, name, birthday FROM users WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStoreAddFriendChecksBothUsers(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresUserStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = s.AddFriend(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStoreAddFriendInsertsDirectedEdge(t *testing.T) {
	db, mock := newMockDB(t)
	s, err := NewPostgresUserStore(db, testLogger(), domain.NewValidator())
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`INSERT INTO friendship`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.AddFriend(context.Background(), 1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
