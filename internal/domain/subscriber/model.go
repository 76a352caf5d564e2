package subscriber

import (
	"github.com/bookflow/bookflow/internal/types"
	"github.com/bookflow/bookflow/internal/validator"
)

// Subscriber is a business account with an active metered subscription.
// The record is created and maintained by the subscription lifecycle
// webhooks; reconciliation treats it as read-only.
type Subscriber struct {
	ID   string `db:"id" json:"id" validate:"required"`
	Name string `db:"name" json:"name"`

	// Provider-side identifiers
	ExternalCustomerID     string `db:"external_customer_id" json:"external_customer_id" validate:"required"`
	ExternalSubscriptionID string `db:"external_subscription_id" json:"external_subscription_id" validate:"required"`

	// Local billing cadence, used only when the provider's authoritative
	// current period is unavailable
	BillingPeriod      types.BillingPeriod `db:"billing_period" json:"billing_period"`
	BillingPeriodCount int                 `db:"billing_period_count" json:"billing_period_count"`

	types.BaseModel
}

// Validate validates the subscriber
func (s *Subscriber) Validate() error {
	if err := validator.ValidateRequest(s); err != nil {
		return err
	}
	return s.BillingPeriod.Validate()
}
