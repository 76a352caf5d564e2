package usage

import (
	"time"

	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/types"
	"github.com/bookflow/bookflow/internal/validator"
)

// Event is one billable unit of activity in the usage ledger. Events are
// appended by the activity-producing side (a confirmed booking) with
// billed=false and are never deleted; reconciliation flips billed to true
// exactly once. OccurredAt records the real-world action instant and is
// immutable.
type Event struct {
	// Unique identifier for the event, k-sortable by creation
	ID string `db:"id" json:"id" validate:"required"`

	// SubscriberID is the owning business account
	SubscriberID string `db:"subscriber_id" json:"subscriber_id" validate:"required"`

	// OccurredAt is the timestamp of the real-world action being billed
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at" validate:"required"`

	// Billed is true once the event has been reported to the metering
	// provider and committed. Invariant: Billed == true iff BilledAt is set.
	Billed   bool       `db:"billed" json:"billed"`
	BilledAt *time.Time `db:"billed_at" json:"billed_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewEvent creates an unbilled usage event with defaults
func NewEvent(subscriberID string, occurredAt time.Time) *Event {
	now := time.Now().UTC()

	if occurredAt.IsZero() {
		occurredAt = now
	} else {
		occurredAt = occurredAt.UTC()
	}

	return &Event{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USAGE_EVENT),
		SubscriberID: subscriberID,
		OccurredAt:   occurredAt,
		Billed:       false,
		CreatedAt:    now,
	}
}

// Validate validates the event
func (e *Event) Validate() error {
	if e.Billed != (e.BilledAt != nil) {
		return ierr.NewError("billed flag and billed_at are inconsistent").
			WithHint("An event is billed if and only if billed_at is set").
			Mark(ierr.ErrValidation)
	}

	return validator.ValidateRequest(e)
}
