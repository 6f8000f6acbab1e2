package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

// PostgresUserStore implements UserStore on PostgreSQL. Friendship edges
// live in the friendship table as directed rows with an is_confirmed flag
// that is always inserted false.
type PostgresUserStore struct {
	db       *sqlx.DB
	logger   *slog.Logger
	validate *validator.Validate
}

func NewPostgresUserStore(db *sqlx.DB, logger *slog.Logger, validate *validator.Validate) (*PostgresUserStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresUserStore{db: db, logger: logger, validate: validate}, nil
}

type userRow struct {
	ID       int         `db:"id"`
	Email    string      `db:"email"`
	Login    string      `db:"login"`
	Name     string      `db:"name"`
	Birthday domain.Date `db:"birthday"`
}

func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.DefaultName()
	if err := s.validate.StructCtx(ctx, user); err != nil {
		return nil, fmt.Errorf("user validation failed: %w", err)
	}

	query := `INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`
	s.logger.DebugContext(ctx, "executing create user query", slog.String("login", user.Login))
	if err := s.db.GetContext(ctx, &user.ID, query, user.Email, user.Login, user.Name, user.Birthday); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			s.logger.WarnContext(ctx, "user already exists", slog.String("login", user.Login), slog.String("constraint", pqErr.Constraint))
		}
		s.logger.ErrorContext(ctx, "failed to create user in DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.InfoContext(ctx, "user created in DB", slog.Int("userID", user.ID))
	return s.Get(ctx, user.ID)
}

func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := s.Get(ctx, user.ID); err != nil {
		return nil, err
	}
	user.DefaultName()
	if err := s.validate.StructCtx(ctx, user); err != nil {
		return nil, fmt.Errorf("user validation failed: %w", err)
	}

	query := `UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`
	s.logger.DebugContext(ctx, "executing update user query", slog.Int("userID", user.ID))
	if _, err := s.db.ExecContext(ctx, query, user.Email, user.Login, user.Name, user.Birthday, user.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to update user in DB", slog.Int("userID", user.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.logger.InfoContext(ctx, "user updated in DB", slog.Int("userID", user.ID))
	return s.Get(ctx, user.ID)
}

func (s *PostgresUserStore) Delete(ctx context.Context, id int) error {
	s.logger.DebugContext(ctx, "executing delete user query", slog.Int("userID", id))
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete user from DB", slog.Int("userID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) Get(ctx context.Context, id int) (*domain.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row,
		`SELECT id, email, login, name, birthday FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "user not found in DB", slog.Int("userID", id))
			return nil, fmt.Errorf("user with id = %d: %w", id, ErrUserNotFound)
		}
		s.logger.ErrorContext(ctx, "failed to get user from DB", slog.Int("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	friends, err := s.friendIDs(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	return rowToUser(&row, friends), nil
}

func (s *PostgresUserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, email, login, name, birthday FROM users`); err != nil {
		s.logger.ErrorContext(ctx, "failed to list users from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		friends, err := s.friendIDs(ctx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		users = append(users, rowToUser(&rows[i], friends))
	}
	return users, nil
}

func (s *PostgresUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	if err := s.checkExists(ctx, userID); err != nil {
		return err
	}
	if err := s.checkExists(ctx, friendID); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "executing add friend query", slog.Int("userID", userID), slog.Int("friendID", friendID))
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO friendship (user_from, user_to, is_confirmed) VALUES ($1, $2, FALSE) ON CONFLICT DO NOTHING`,
		userID, friendID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to add friend in DB", slog.Int("userID", userID), slog.Int("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	s.logger.DebugContext(ctx, "executing remove friend query", slog.Int("userID", userID), slog.Int("friendID", friendID))
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM friendship WHERE user_from = $1 AND user_to = $2`, userID, friendID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to remove friend in DB", slog.Int("userID", userID), slog.Int("friendID", friendID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FriendIDs(ctx context.Context, userID int) ([]int, error) {
	if err := s.checkExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.friendIDs(ctx, userID)
}

func (s *PostgresUserStore) friendIDs(ctx context.Context, userID int) ([]int, error) {
	ids := []int{}
	if err := s.db.SelectContext(ctx, &ids,
		`SELECT user_to FROM friendship WHERE user_from = $1 ORDER BY user_to`, userID); err != nil {
		return nil, fmt.Errorf("failed to read friends: %w", err)
	}
	return ids, nil
}

func (s *PostgresUserStore) checkExists(ctx context.Context, userID int) error {
	var exists bool
	if err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID); err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("user with id = %d: %w", userID, ErrUserNotFound)
	}
	return nil
}

func rowToUser(row *userRow, friends []int) *domain.User {
	return &domain.User{
		ID:       row.ID,
		Email:    row.Email,
		Login:    row.Login,
		Name:     row.Name,
		Birthday: row.Birthday,
		Friends:  friends,
	}
}
