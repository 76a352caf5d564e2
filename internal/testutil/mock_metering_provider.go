package testutil

import (
	"context"
	"sync"

	"github.com/bookflow/bookflow/internal/domain/metering"
	ierr "github.com/bookflow/bookflow/internal/errors"
)

// MockMeteringProvider is a configurable in-memory metering.Provider.
// Tests register subscriptions per id and can force errors at either
// call site, including mid-batch submission failures.
type MockMeteringProvider struct {
	mu sync.Mutex

	subscriptions map[string]*metering.Subscription

	// GetErr, when set, is returned by every GetSubscription call
	GetErr error

	// SubmitErr, when set, fails submission. With FailAfter == 0 the
	// batch fails before any record is accepted; with FailAfter == n the
	// first n records are accepted first, simulating a partial dispatch.
	SubmitErr error
	FailAfter int

	// OnSubmit, when set, runs at the start of every SubmitUsageRecords
	// call, outside the provider lock. Tests use it to interleave work
	// between the query and commit phases of a reconciliation run.
	OnSubmit func(records []*metering.UsageRecord)

	submitted []*metering.UsageRecord
}

func NewMockMeteringProvider() *MockMeteringProvider {
	return &MockMeteringProvider{
		subscriptions: make(map[string]*metering.Subscription),
	}
}

// SetSubscription registers the provider-side subscription record
func (m *MockMeteringProvider) SetSubscription(sub *metering.Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions[sub.ID] = sub
}

func (m *MockMeteringProvider) GetSubscription(ctx context.Context, subscriptionID string) (*metering.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}

	sub, ok := m.subscriptions[subscriptionID]
	if !ok {
		return nil, ierr.NewError("subscription not found").
			WithHintf("Subscription %s was not found", subscriptionID).
			Mark(ierr.ErrIntegration)
	}
	return sub, nil
}

func (m *MockMeteringProvider) SubmitUsageRecords(ctx context.Context, records []*metering.UsageRecord) error {
	if m.OnSubmit != nil {
		m.OnSubmit(records)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SubmitErr != nil {
		accepted := m.FailAfter
		if accepted > len(records) {
			accepted = len(records)
		}
		m.submitted = append(m.submitted, records[:accepted]...)
		return m.SubmitErr
	}

	m.submitted = append(m.submitted, records...)
	return nil
}

// Submitted returns every record accepted so far, in submission order
func (m *MockMeteringProvider) Submitted() []*metering.UsageRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*metering.UsageRecord, len(m.submitted))
	copy(result, m.submitted)
	return result
}

// Clear drops all registered subscriptions, recorded submissions and
// configured errors
func (m *MockMeteringProvider) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make(map[string]*metering.Subscription)
	m.submitted = nil
	m.GetErr = nil
	m.SubmitErr = nil
	m.FailAfter = 0
	m.OnSubmit = nil
}
