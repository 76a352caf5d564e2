package dto

import (
	"time"

	"github.com/bookflow/bookflow/internal/domain/usage"
)

// IngestUsageEventRequest records one billable action for a subscriber.
// Events are always inserted unbilled; reconciliation bills them later.
type IngestUsageEventRequest struct {
	SubscriberID string    `json:"subscriber_id" validate:"required"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (r *IngestUsageEventRequest) ToEvent() *usage.Event {
	return usage.NewEvent(r.SubscriberID, r.OccurredAt)
}

// IngestUsageEventResponse returns the stored event
type IngestUsageEventResponse struct {
	Event *usage.Event `json:"event"`
}
