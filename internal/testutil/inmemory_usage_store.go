package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bookflow/bookflow/internal/domain/usage"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/types"
)

// InMemoryUsageStore provides an in-memory implementation of
// usage.Repository for testing
type InMemoryUsageStore struct {
	mu     sync.RWMutex
	events map[string]*usage.Event
}

func NewInMemoryUsageStore() *InMemoryUsageStore {
	return &InMemoryUsageStore{
		events: make(map[string]*usage.Event),
	}
}

func (s *InMemoryUsageStore) Insert(ctx context.Context, event *usage.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; ok {
		return ierr.NewError("event already exists").
			WithHintf("Event with id %s already exists", event.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *InMemoryUsageStore) ListUnbilled(ctx context.Context, subscriberID string, period types.BillingPeriodWindow) ([]*usage.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*usage.Event
	for _, event := range s.events {
		if event.SubscriberID != subscriberID || event.Billed {
			continue
		}
		if !period.Contains(event.OccurredAt) {
			continue
		}
		copied := *event
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].OccurredAt.Equal(result[j].OccurredAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].OccurredAt.Before(result[j].OccurredAt)
	})

	return result, nil
}

func (s *InMemoryUsageStore) CountInPeriod(ctx context.Context, subscriberID string, period types.BillingPeriodWindow) (*usage.PeriodCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := &usage.PeriodCounts{}
	for _, event := range s.events {
		if event.SubscriberID != subscriberID {
			continue
		}
		if !period.Contains(event.OccurredAt) {
			continue
		}
		counts.Total++
		if event.Billed {
			counts.Billed++
		}
	}
	return counts, nil
}

func (s *InMemoryUsageStore) MarkBilled(ctx context.Context, ids []string, billedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for _, id := range ids {
		event, ok := s.events[id]
		if !ok || event.Billed {
			continue
		}
		ts := billedAt
		event.Billed = true
		event.BilledAt = &ts
		affected++
	}
	return affected, nil
}

// Get returns a copy of the stored event, for test assertions
func (s *InMemoryUsageStore) Get(id string) (*usage.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, false
	}
	copied := *event
	return &copied, true
}

// Clear removes all events from the store
func (s *InMemoryUsageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]*usage.Event)
}
