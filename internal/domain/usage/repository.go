package usage

import (
	"context"
	"time"

	"github.com/bookflow/bookflow/internal/types"
)

// PeriodCounts carries diagnostic counters for a subscriber's billing
// period. Used for logging and monitoring only, never as a correctness
// input to reconciliation.
type PeriodCounts struct {
	Total  int64 `json:"total"`
	Billed int64 `json:"billed"`
}

// Unbilled returns the number of events in the period not yet billed
func (c PeriodCounts) Unbilled() int64 {
	return c.Total - c.Billed
}

type Repository interface {
	// Insert appends a new event to the ledger. Producers only ever
	// insert with billed=false.
	Insert(ctx context.Context, event *Event) error

	// ListUnbilled returns the unbilled events for a subscriber with
	// occurred_at in [period.Start, period.End), ordered ascending by
	// occurred_at. The returned set is the frozen batch that dispatch
	// and commit operate on.
	ListUnbilled(ctx context.Context, subscriberID string, period types.BillingPeriodWindow) ([]*Event, error)

	// CountInPeriod returns total and already-billed counts for a
	// subscriber's period, for diagnostics.
	CountInPeriod(ctx context.Context, subscriberID string, period types.BillingPeriodWindow) (*PeriodCounts, error)

	// MarkBilled sets billed=true, billed_at=billedAt for exactly the
	// given id set and returns the number of rows updated. The update is
	// scoped to ids, never to a period predicate, so it is safe to run
	// concurrently with live event ingestion.
	MarkBilled(ctx context.Context, ids []string, billedAt time.Time) (int64, error)
}
