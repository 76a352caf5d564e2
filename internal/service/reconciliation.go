package service

import (
	"context"
	"sync"
	"time"

	"github.com/bookflow/bookflow/internal/api/dto"
	"github.com/bookflow/bookflow/internal/config"
	"github.com/bookflow/bookflow/internal/domain/metering"
	"github.com/bookflow/bookflow/internal/domain/notification"
	"github.com/bookflow/bookflow/internal/domain/subscriber"
	"github.com/bookflow/bookflow/internal/domain/usage"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/types"
)

// ReconciliationService computes each metered subscriber's current billing
// period, reports the period's unbilled usage to the metering provider and
// durably marks exactly the dispatched events as billed.
type ReconciliationService interface {
	// ReconcileAll runs reconciliation for every active metered
	// subscriber, isolating failures per subscriber. At most one run may
	// be in flight at a time; concurrent triggers are rejected.
	ReconcileAll(ctx context.Context, req *dto.RunReconciliationRequest) (*dto.ReconciliationRunResponse, error)
}

type reconciliationService struct {
	subscriberRepo subscriber.Repository
	usageRepo      usage.Repository
	provider       metering.Provider
	notifier       notification.Notifier
	cfg            *config.Configuration
	logger         *logger.Logger

	// now is swapped in tests to pin calculated period boundaries
	now func() time.Time

	// running guards against overlapping batch runs, which could race
	// the per-subscriber usage snapshots
	running sync.Mutex
}

func NewReconciliationService(
	subscriberRepo subscriber.Repository,
	usageRepo usage.Repository,
	provider metering.Provider,
	notifier notification.Notifier,
	cfg *config.Configuration,
	logger *logger.Logger,
) ReconciliationService {
	return &reconciliationService{
		subscriberRepo: subscriberRepo,
		usageRepo:      usageRepo,
		provider:       provider,
		notifier:       notifier,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *reconciliationService) ReconcileAll(ctx context.Context, req *dto.RunReconciliationRequest) (*dto.ReconciliationRunResponse, error) {
	if !s.running.TryLock() {
		return nil, ierr.NewError("reconciliation already in progress").
			WithHint("Wait for the current run to finish before triggering another").
			Mark(ierr.ErrInvalidOperation)
	}
	defer s.running.Unlock()

	if req == nil {
		req = &dto.RunReconciliationRequest{}
	}

	subscribers, err := s.subscriberRepo.ListActiveMetered(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.ReconciliationRunResponse{
		Items: make([]*dto.ReconciliationItem, 0, len(subscribers)),
		Total: len(subscribers),
	}

	s.logger.Infow("starting usage reconciliation run",
		"subscribers", len(subscribers),
		"test_run", req.TestRun,
	)

	for _, sub := range subscribers {
		// Graceful drain: abort between subscribers, never between a
		// subscriber's dispatch and commit.
		if ctx.Err() != nil {
			s.logger.Warnw("reconciliation run cancelled",
				"processed", len(response.Items),
				"total", len(subscribers),
			)
			break
		}

		item := s.reconcileSubscriber(ctx, sub, req.TestRun)
		response.Items = append(response.Items, item)

		switch item.Status {
		case dto.ReconciliationStatusCompleted:
			response.Success++
		case dto.ReconciliationStatusSkipped:
			response.Skipped++
		case dto.ReconciliationStatusFailed:
			response.Failed++
		}
	}

	s.logger.Infow("usage reconciliation run finished",
		"total", response.Total,
		"success", response.Success,
		"skipped", response.Skipped,
		"failed", response.Failed,
	)

	return response, nil
}

// reconcileSubscriber runs the resolve → query → dispatch → commit →
// notify pipeline for one subscriber. Any error is terminal for this run
// only: the subscriber's unbilled events stay unbilled and are picked up
// by the next run.
func (s *reconciliationService) reconcileSubscriber(ctx context.Context, sub *subscriber.Subscriber, testRun bool) *dto.ReconciliationItem {
	item := &dto.ReconciliationItem{
		SubscriberID: sub.ID,
	}

	if sub.ExternalCustomerID == "" || sub.ExternalSubscriptionID == "" {
		s.logger.Warnw("subscriber missing provider linkage, skipping",
			"subscriber_id", sub.ID,
		)
		item.Status = dto.ReconciliationStatusSkipped
		item.Error = "missing provider customer or subscription linkage"
		return item
	}

	providerSub, err := s.provider.GetSubscription(ctx, sub.ExternalSubscriptionID)
	if err != nil {
		// Without the provider record there is no metered line item to
		// report against; the subscriber is retried next run unchanged.
		s.logger.Warnw("provider subscription unavailable, skipping subscriber",
			"subscriber_id", sub.ID,
			"subscription_id", sub.ExternalSubscriptionID,
			"error", err,
		)
		item.Status = dto.ReconciliationStatusSkipped
		item.Error = err.Error()
		return item
	}

	if providerSub.MeteredItem == nil {
		s.logger.Warnw("no metered line item on provider subscription, skipping subscriber",
			"subscriber_id", sub.ID,
			"subscription_id", sub.ExternalSubscriptionID,
		)
		item.Status = dto.ReconciliationStatusSkipped
		item.Error = "no metered line item configured"
		return item
	}

	eventName := s.resolveEventName(providerSub.MeteredItem)
	period := s.resolveBillingPeriod(sub, providerSub)
	item.PeriodStart = &period.Start
	item.PeriodEnd = &period.End
	item.PeriodSource = period.Source

	// Diagnostics only; a counting failure never aborts the run
	if counts, err := s.usageRepo.CountInPeriod(ctx, sub.ID, period); err != nil {
		s.logger.Warnw("failed to count usage events in period",
			"subscriber_id", sub.ID,
			"error", err,
		)
	} else {
		s.logger.Infow("usage events in billing period",
			"subscriber_id", sub.ID,
			"period_start", period.Start,
			"period_end", period.End,
			"period_source", period.Source,
			"total", counts.Total,
			"already_billed", counts.Billed,
			"unbilled", counts.Unbilled(),
		)
	}

	// The returned slice is the frozen batch: dispatch and commit operate
	// on exactly this id set, regardless of events inserted afterwards.
	events, err := s.usageRepo.ListUnbilled(ctx, sub.ID, period)
	if err != nil {
		s.logger.Errorw("failed to query unbilled usage events",
			"subscriber_id", sub.ID,
			"error", err,
		)
		item.Status = dto.ReconciliationStatusFailed
		item.Error = err.Error()
		return item
	}

	if len(events) == 0 {
		s.logger.Infow("no unbilled usage in period",
			"subscriber_id", sub.ID,
			"period_start", period.Start,
			"period_end", period.End,
		)
		item.Status = dto.ReconciliationStatusCompleted
		return item
	}

	records := make([]*metering.UsageRecord, len(events))
	ids := make([]string, len(events))
	for i, event := range events {
		records[i] = &metering.UsageRecord{
			ID:         event.ID,
			CustomerID: sub.ExternalCustomerID,
			ItemID:     providerSub.MeteredItem.ID,
			EventName:  eventName,
			Quantity:   1,
			Timestamp:  event.OccurredAt,
		}
		ids[i] = event.ID
		if testRun {
			s.logger.Infow("dispatching usage record",
				"subscriber_id", sub.ID,
				"event_id", event.ID,
				"occurred_at", event.OccurredAt,
			)
		}
	}

	if err := s.provider.SubmitUsageRecords(ctx, records); err != nil {
		// All-or-nothing: nothing is committed, the whole batch stays
		// unbilled and is re-dispatched next run (at-least-once).
		s.logger.Errorw("usage dispatch failed, batch remains unbilled",
			"subscriber_id", sub.ID,
			"event_count", len(records),
			"error", err,
		)
		item.Status = dto.ReconciliationStatusFailed
		item.Error = err.Error()
		return item
	}

	billedAt := s.now().UTC()
	affected, err := s.usageRepo.MarkBilled(ctx, ids, billedAt)
	if err != nil {
		// The provider has recorded the usage but the ledger still shows
		// it unbilled, so the next run will dispatch it again. This is
		// the one path that can double-charge; it needs an operator.
		s.logger.Errorw("commit failed after successful dispatch, usage may be double billed on next run",
			"subscriber_id", sub.ID,
			"event_ids", ids,
			"error", err,
		)
		item.Status = dto.ReconciliationStatusFailed
		item.Error = err.Error()
		return item
	}

	if affected != int64(len(ids)) {
		s.logger.Warnw("commit updated fewer rows than dispatched",
			"subscriber_id", sub.ID,
			"dispatched", len(ids),
			"committed", affected,
		)
	}

	item.Status = dto.ReconciliationStatusCompleted
	item.UnitsBilled = int64(len(ids))

	s.logger.Infow("usage reconciliation committed",
		"subscriber_id", sub.ID,
		"units_billed", len(ids),
		"period_start", period.Start,
		"period_end", period.End,
	)

	s.notifyUsageBilled(ctx, sub, period, int64(len(ids)), billedAt)

	return item
}

// resolveBillingPeriod returns the [start, end) window to reconcile. The
// provider's live period wins unconditionally because it carries the
// subscription's actual anchor instant; the calculated fallback anchors
// to calendar boundaries instead.
func (s *reconciliationService) resolveBillingPeriod(sub *subscriber.Subscriber, providerSub *metering.Subscription) types.BillingPeriodWindow {
	if providerSub != nil && providerSub.CurrentPeriodStart != nil && providerSub.CurrentPeriodEnd != nil {
		return types.BillingPeriodWindow{
			Start:  providerSub.CurrentPeriodStart.UTC(),
			End:    providerSub.CurrentPeriodEnd.UTC(),
			Source: types.BillingPeriodSourceProvider,
		}
	}

	period := sub.BillingPeriod
	if err := period.Validate(); err != nil {
		s.logger.Warnw("unknown billing period, defaulting to monthly",
			"subscriber_id", sub.ID,
			"billing_period", sub.BillingPeriod,
		)
		period = types.BILLING_PERIOD_MONTHLY
	}

	unit := sub.BillingPeriodCount
	if unit <= 0 {
		unit = 1
	}

	now := s.now().UTC()
	end, err := types.TruncateToPeriodBoundary(now, period)
	if err != nil {
		end, _ = types.TruncateToPeriodBoundary(now, types.BILLING_PERIOD_MONTHLY)
	}
	start, err := types.PreviousBillingDate(end, unit, period)
	if err != nil {
		start, _ = types.PreviousBillingDate(end, 1, types.BILLING_PERIOD_MONTHLY)
	}

	return types.BillingPeriodWindow{
		Start:  start,
		End:    end,
		Source: types.BillingPeriodSourceCalculated,
	}
}

// resolveEventName picks the metered event label by precedence: line item
// price metadata, then parent product metadata, then the configured
// default.
func (s *reconciliationService) resolveEventName(item *metering.MeteredItem) string {
	if item.EventName != "" {
		return item.EventName
	}
	if item.ProductEventName != "" {
		return item.ProductEventName
	}
	return s.cfg.Billing.DefaultEventName
}

// notifyUsageBilled is fire and forget: a delivery failure is logged and
// never affects already-committed billing state.
func (s *reconciliationService) notifyUsageBilled(ctx context.Context, sub *subscriber.Subscriber, period types.BillingPeriodWindow, units int64, billedAt time.Time) {
	if units <= 0 {
		return
	}

	err := s.notifier.NotifyUsageBilled(ctx, &notification.UsageBilledNotification{
		SubscriberID:   sub.ID,
		SubscriberName: sub.Name,
		UnitsBilled:    units,
		Period:         period,
		BilledAt:       billedAt,
	})
	if err != nil {
		s.logger.Warnw("failed to deliver usage billed notification",
			"subscriber_id", sub.ID,
			"units_billed", units,
			"error", err,
		)
	}
}
