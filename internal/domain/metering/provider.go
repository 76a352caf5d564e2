package metering

import (
	"context"
	"time"
)

// MeteredItem is the metered line item of a provider subscription along
// with the event-name metadata attached to it and to its parent product.
type MeteredItem struct {
	ID string `json:"id"`

	// EventName is the metered event label attached to the line item's
	// price. Empty when the price carries none.
	EventName string `json:"event_name,omitempty"`

	// ProductEventName is the label attached to the parent product, used
	// as a fallback when the price carries none.
	ProductEventName string `json:"product_event_name,omitempty"`
}

// Subscription is the provider's live view of a subscriber's
// subscription, fetched fresh each reconciliation run.
type Subscription struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	// CurrentPeriodStart/End are the authoritative billing cycle bounds
	// anchored to the subscription's actual start instant. Nil when the
	// provider does not expose them.
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`

	// MeteredItem is nil when the subscription has no metered line item
	// configured, which excludes the subscriber from reconciliation.
	MeteredItem *MeteredItem `json:"metered_item,omitempty"`
}

// UsageRecord is one discrete usage unit reported to the provider. Each
// ledger event maps to exactly one record with a quantity of 1 and the
// event's own occurred-at timestamp, preserving temporal attribution in
// the provider's ledger.
type UsageRecord struct {
	// ID is the ledger event id. It is forwarded as the provider-side
	// idempotency identifier so a re-dispatched record is deduplicated
	// rather than double-counted.
	ID string `json:"id"`

	CustomerID string    `json:"customer_id"`
	ItemID     string    `json:"item_id"`
	EventName  string    `json:"event_name"`
	Quantity   int64     `json:"quantity"`
	Timestamp  time.Time `json:"timestamp"`
}

// Provider is the external metering/invoicing system
type Provider interface {
	// GetSubscription returns the live subscription record for the given
	// provider subscription id.
	GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)

	// SubmitUsageRecords reports the records one at a time and returns
	// an error as soon as any record is rejected. The caller treats any
	// error as a failure of the entire batch; no partial commit follows
	// a partial dispatch.
	SubmitUsageRecords(ctx context.Context, records []*UsageRecord) error
}
