package store

import (
	"context"
	"errors"

	"github.com/KseniyaA/java-filmorate/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore defines the persistence contract for users and the friendship
// graph. Friendship is a directed edge with a confirmation flag that is
// always stored unconfirmed; both backends implement the same directed
// model.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int) error
	Get(ctx context.Context, id int) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)

	// AddFriend inserts the directed edge userID -> friendID. Both users
	// must exist. Repeated calls are idempotent.
	AddFriend(ctx context.Context, userID, friendID int) error
	// RemoveFriend deletes the edge userID -> friendID; no-op if absent.
	RemoveFriend(ctx context.Context, userID, friendID int) error
	// FriendIDs returns the ids reachable via outgoing edges from userID.
	FriendIDs(ctx context.Context, userID int) ([]int, error)
}
