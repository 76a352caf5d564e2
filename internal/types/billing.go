package types

import (
	"strings"
	"time"

	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/samber/lo"
)

// BillingPeriod is the unit of a subscriber's billing cycle
type BillingPeriod string

const (
	BILLING_PERIOD_DAILY   BillingPeriod = "DAILY"
	BILLING_PERIOD_WEEKLY  BillingPeriod = "WEEKLY"
	BILLING_PERIOD_MONTHLY BillingPeriod = "MONTHLY"
	BILLING_PERIOD_ANNUAL  BillingPeriod = "ANNUAL"
)

func (b BillingPeriod) String() string {
	return string(b)
}

func (b BillingPeriod) Validate() error {
	allowedValues := []BillingPeriod{
		BILLING_PERIOD_DAILY,
		BILLING_PERIOD_WEEKLY,
		BILLING_PERIOD_MONTHLY,
		BILLING_PERIOD_ANNUAL,
	}

	if !lo.Contains(allowedValues, b) {
		return ierr.NewError("invalid billing period").
			WithHint("Invalid billing period").
			WithReportableDetails(map[string]any{
				"allowed_values": allowedValues,
				"provided_value": b,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ParseBillingPeriod maps a provider interval string (day/week/month/year)
// to a BillingPeriod. Unknown values fall back to monthly; the second
// return value reports whether the input was recognised so callers can
// log a warning on fallback.
func ParseBillingPeriod(interval string) (BillingPeriod, bool) {
	switch strings.ToLower(interval) {
	case "day", "daily":
		return BILLING_PERIOD_DAILY, true
	case "week", "weekly":
		return BILLING_PERIOD_WEEKLY, true
	case "month", "monthly":
		return BILLING_PERIOD_MONTHLY, true
	case "year", "yearly", "annual":
		return BILLING_PERIOD_ANNUAL, true
	default:
		return BILLING_PERIOD_MONTHLY, false
	}
}

// BillingPeriodSource indicates how a billing period window was obtained
type BillingPeriodSource string

const (
	// BillingPeriodSourceProvider means the window came from the live
	// provider subscription record and carries the subscriber's actual
	// anchor instant.
	BillingPeriodSourceProvider BillingPeriodSource = "provider"
	// BillingPeriodSourceCalculated means the window was derived locally
	// from calendar boundaries because the provider period was unavailable.
	BillingPeriodSourceCalculated BillingPeriodSource = "calculated"
)

// BillingPeriodWindow is the [Start, End) window reconciled in one run
// for one subscriber. End is exclusive.
type BillingPeriodWindow struct {
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Source BillingPeriodSource `json:"source"`
}

func (w BillingPeriodWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return ierr.NewError("invalid billing period window").
			WithHint("Billing period start must be before end").
			WithReportableDetails(map[string]any{
				"start": w.Start,
				"end":   w.End,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Contains reports whether ts falls inside the window. Start is
// inclusive, End is exclusive.
func (w BillingPeriodWindow) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}
