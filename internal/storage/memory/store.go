// Package memory implements the storage interface with mutex-guarded
// in-memory state. All instance state is ephemeral: it starts empty and
// is reset by a process restart.
package memory

import (
	"context"
	"sync"

	"github.com/furnet/instance-server/internal/domain"
)

// Store is an in-memory implementation of the storage interface.
type Store struct {
	mu sync.RWMutex

	friends   []*domain.FriendLink
	friendIDs map[string]struct{} // key: FriendLink.UniqueID
	items     []*domain.Item
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		friendIDs: make(map[string]struct{}),
	}
}

func (s *Store) Close() error { return nil }

// AddFriend appends a friend link. Uniqueness and the directory cap are
// enforced under the write lock, duplicate first, so concurrent
// registrations can neither double-insert nor exceed the cap.
func (s *Store) AddFriend(ctx context.Context, friend *domain.FriendLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.friendIDs[friend.UniqueID]; ok {
		return domain.ErrDuplicateFriend
	}
	if len(s.friends) >= domain.MaxFriends {
		return domain.ErrDirectoryFull
	}

	cp := *friend
	s.friends = append(s.friends, &cp)
	s.friendIDs[friend.UniqueID] = struct{}{}
	return nil
}

// ListFriends returns all friend links in insertion order.
func (s *Store) ListFriends(ctx context.Context) ([]*domain.FriendLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friends := make([]*domain.FriendLink, len(s.friends))
	copy(friends, s.friends)
	return friends, nil
}

// HasFriend reports whether a link with the given unique id exists.
func (s *Store) HasFriend(ctx context.Context, uniqueID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.friendIDs[uniqueID]
	return ok, nil
}

// CountFriends returns the number of stored friend links.
func (s *Store) CountFriends(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.friends), nil
}

// CreateItem stores a new demo item.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *item
	s.items = append(s.items, &cp)
	return nil
}

// ListItems returns all demo items in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*domain.Item, len(s.items))
	copy(items, s.items)
	return items, nil
}

// GetItem returns the demo item with the given id.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteItem removes the demo item with the given id.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
