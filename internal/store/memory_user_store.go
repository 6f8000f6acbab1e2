package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

// MemoryUserStore keeps users in a mutex-guarded map with a monotonic id
// counter. Friendship edges are directed, stored in each user's Friends
// slice as outgoing edges only, matching the relational model.
type MemoryUserStore struct {
	mu         sync.RWMutex
	users      map[int]*domain.User
	idSequence int

	logger   *slog.Logger
	validate *validator.Validate
}

func NewMemoryUserStore(logger *slog.Logger, validate *validator.Validate) *MemoryUserStore {
	return &MemoryUserStore{
		users:    make(map[int]*domain.User),
		logger:   logger,
		validate: validate,
	}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.DefaultName()
	if err := s.validate.StructCtx(ctx, user); err != nil {
		return nil, fmt.Errorf("user validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.idSequence++
	user.ID = s.idSequence
	stored := cloneUser(user)
	s.users[stored.ID] = stored

	s.logger.InfoContext(ctx, "user created", slog.Int("userID", stored.ID), slog.String("login", stored.Login))
	return cloneUser(stored), nil
}

func (s *MemoryUserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Existence is checked before validation, as in the film store.
	if _, ok := s.users[user.ID]; !ok {
		s.logger.WarnContext(ctx, "user to update not found", slog.Int("userID", user.ID))
		return nil, fmt.Errorf("user with id = %d: %w", user.ID, ErrUserNotFound)
	}
	user.DefaultName()
	if err := s.validate.StructCtx(ctx, user); err != nil {
		return nil, fmt.Errorf("user validation failed: %w", err)
	}
	stored := cloneUser(user)
	s.users[stored.ID] = stored

	s.logger.InfoContext(ctx, "user updated", slog.Int("userID", stored.ID))
	return cloneUser(stored), nil
}

func (s *MemoryUserStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	s.logger.InfoContext(ctx, "user deleted", slog.Int("userID", id))
	return nil
}

func (s *MemoryUserStore) Get(ctx context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id = %d: %w", id, ErrUserNotFound)
	}
	return cloneUser(user), nil
}

func (s *MemoryUserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for id := 1; id <= s.idSequence; id++ {
		if user, ok := s.users[id]; ok {
			users = append(users, cloneUser(user))
		}
	}
	return users, nil
}

func (s *MemoryUserStore) AddFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user with id = %d: %w", userID, ErrUserNotFound)
	}
	if _, ok := s.users[friendID]; !ok {
		return fmt.Errorf("user with id = %d: %w", friendID, ErrUserNotFound)
	}
	if containsInt(user.Friends, friendID) {
		return nil
	}
	user.Friends = append(user.Friends, friendID)
	s.logger.InfoContext(ctx, "friend added", slog.Int("userID", userID), slog.Int("friendID", friendID))
	return nil
}

func (s *MemoryUserStore) RemoveFriend(ctx context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user with id = %d: %w", userID, ErrUserNotFound)
	}
	user.Friends = removeInt(user.Friends, friendID)
	s.logger.InfoContext(ctx, "friend removed", slog.Int("userID", userID), slog.Int("friendID", friendID))
	return nil
}

func (s *MemoryUserStore) FriendIDs(ctx context.Context, userID int) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user with id = %d: %w", userID, ErrUserNotFound)
	}
	return append([]int(nil), user.Friends...), nil
}

func cloneUser(user *domain.User) *domain.User {
	clone := *user
	clone.Friends = append([]int{}, user.Friends...)
	return &clone
}
