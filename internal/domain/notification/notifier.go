package notification

import (
	"context"
	"time"

	"github.com/bookflow/bookflow/internal/types"
)

// UsageBilledNotification informs a subscriber how many units were billed
// in a reconciliation run. Sent only after a successful commit and only
// when at least one unit was billed.
type UsageBilledNotification struct {
	SubscriberID   string                    `json:"subscriber_id"`
	SubscriberName string                    `json:"subscriber_name,omitempty"`
	UnitsBilled    int64                     `json:"units_billed"`
	Period         types.BillingPeriodWindow `json:"period"`
	BilledAt       time.Time                 `json:"billed_at"`
}

// Notifier delivers subscriber-facing notifications. Delivery is fire and
// forget: failures are logged by the caller and never roll back billing
// state.
type Notifier interface {
	NotifyUsageBilled(ctx context.Context, n *UsageBilledNotification) error
}
