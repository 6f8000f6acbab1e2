package service

import (
	"context"
	"log/slog"

	"github.com/KseniyaA/java-filmorate/internal/domain"
	"github.com/KseniyaA/java-filmorate/internal/store"
)

// UserService orchestrates user operations and the friend-graph queries.
type UserService struct {
	users  store.UserStore
	logger *slog.Logger
}

func NewUserService(users store.UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return s.users.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	return s.users.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}

func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) error {
	return s.users.AddFriend(ctx, userID, friendID)
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	return s.users.RemoveFriend(ctx, userID, friendID)
}

// Friends returns full user records for everyone reachable from userID via
// an outgoing friendship edge.
func (s *UserService) Friends(ctx context.Context, userID int) ([]*domain.User, error) {
	ids, err := s.users.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, ids)
}

// CommonFriends returns the intersection of the two users' friend id sets
// as full user records, with no duplicates.
func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int) ([]*domain.User, error) {
	userFriends, err := s.users.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := s.users.FriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int]struct{}, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = struct{}{}
	}
	common := make([]int, 0)
	seen := make(map[int]struct{})
	for _, id := range userFriends {
		if _, ok := otherSet[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		common = append(common, id)
	}
	return s.resolveUsers(ctx, common)
}

func (s *UserService) resolveUsers(ctx context.Context, ids []int) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
