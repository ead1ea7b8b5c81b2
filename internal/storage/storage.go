package storage

import (
	"context"

	"github.com/furnet/instance-server/internal/domain"
)

// Storage defines the interface for the in-memory state of an instance.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Close closes the storage.
	Close() error

	// Friends. The friend directory is append-only: links are never
	// mutated or removed while the process runs.
	AddFriend(ctx context.Context, friend *domain.FriendLink) error
	ListFriends(ctx context.Context) ([]*domain.FriendLink, error)
	HasFriend(ctx context.Context, uniqueID string) (bool, error)
	CountFriends(ctx context.Context) (int, error)

	// Items (demo CRUD).
	CreateItem(ctx context.Context, item *domain.Item) error
	ListItems(ctx context.Context) ([]*domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}
