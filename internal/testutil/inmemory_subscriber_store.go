package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/bookflow/bookflow/internal/domain/subscriber"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/types"
)

// InMemorySubscriberStore provides an in-memory implementation of
// subscriber.Repository for testing
type InMemorySubscriberStore struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber.Subscriber
}

func NewInMemorySubscriberStore() *InMemorySubscriberStore {
	return &InMemorySubscriberStore{
		subscribers: make(map[string]*subscriber.Subscriber),
	}
}

// Add stores a subscriber, overwriting any existing record with the same id
func (s *InMemorySubscriberStore) Add(sub *subscriber.Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sub
	s.subscribers[sub.ID] = &copied
}

func (s *InMemorySubscriberStore) Get(ctx context.Context, id string) (*subscriber.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscribers[id]
	if !ok {
		return nil, ierr.NewError("subscriber not found").
			WithHintf("Subscriber with id %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *sub
	return &copied, nil
}

func (s *InMemorySubscriberStore) ListActiveMetered(ctx context.Context) ([]*subscriber.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*subscriber.Subscriber
	for _, sub := range s.subscribers {
		if sub.Status != types.StatusActive {
			continue
		}
		if sub.ExternalSubscriptionID == "" {
			continue
		}
		copied := *sub
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Clear removes all subscribers from the store
func (s *InMemorySubscriberStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = make(map[string]*subscriber.Subscriber)
}
