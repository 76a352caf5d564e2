package dto

import (
	"time"

	"github.com/bookflow/bookflow/internal/types"
)

// RunReconciliationRequest is the payload of a manual or scheduled
// reconciliation trigger. TestRun only raises logging verbosity; the
// billing semantics are identical to a normal run.
type RunReconciliationRequest struct {
	TestRun bool `json:"test_run"`
}

// ReconciliationItemStatus is the terminal state of one subscriber's run
type ReconciliationItemStatus string

const (
	ReconciliationStatusCompleted ReconciliationItemStatus = "completed"
	ReconciliationStatusSkipped   ReconciliationItemStatus = "skipped"
	ReconciliationStatusFailed    ReconciliationItemStatus = "failed"
)

// ReconciliationItem reports the outcome of one subscriber's
// reconciliation, with enough detail for an operator to replay manually.
type ReconciliationItem struct {
	SubscriberID string                   `json:"subscriber_id"`
	Status       ReconciliationItemStatus `json:"status"`

	PeriodStart  *time.Time                `json:"period_start,omitempty"`
	PeriodEnd    *time.Time                `json:"period_end,omitempty"`
	PeriodSource types.BillingPeriodSource `json:"period_source,omitempty"`

	UnitsBilled int64  `json:"units_billed"`
	Error       string `json:"error,omitempty"`
}

// ReconciliationRunResponse summarises one batch run
type ReconciliationRunResponse struct {
	Items   []*ReconciliationItem `json:"items"`
	Total   int                   `json:"total"`
	Success int                   `json:"success"`
	Skipped int                   `json:"skipped"`
	Failed  int                   `json:"failed"`
}
