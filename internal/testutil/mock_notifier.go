package testutil

import (
	"context"
	"sync"

	"github.com/bookflow/bookflow/internal/domain/notification"
)

// MockNotifier records usage-billed notifications for assertions
type MockNotifier struct {
	mu sync.Mutex

	// Err, when set, is returned by every delivery attempt
	Err error

	notifications []*notification.UsageBilledNotification
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyUsageBilled(ctx context.Context, n *notification.UsageBilledNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.notifications = append(m.notifications, n)
	return nil
}

// Notifications returns every delivered notification in order
func (m *MockNotifier) Notifications() []*notification.UsageBilledNotification {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*notification.UsageBilledNotification, len(m.notifications))
	copy(result, m.notifications)
	return result
}

// Clear drops recorded notifications and any configured error
func (m *MockNotifier) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = nil
	m.Err = nil
}
