package service

import (
	"context"
	"testing"
	"time"

	"github.com/bookflow/bookflow/internal/api/dto"
	"github.com/bookflow/bookflow/internal/config"
	"github.com/bookflow/bookflow/internal/domain/metering"
	"github.com/bookflow/bookflow/internal/domain/subscriber"
	"github.com/bookflow/bookflow/internal/domain/usage"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/testutil"
	"github.com/bookflow/bookflow/internal/types"
	"github.com/bookflow/bookflow/internal/validator"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceSuite struct {
	suite.Suite
	ctx context.Context

	usageStore      *testutil.InMemoryUsageStore
	subscriberStore *testutil.InMemorySubscriberStore
	provider        *testutil.MockMeteringProvider
	notifier        *testutil.MockNotifier

	service *reconciliationService

	// now is the pinned clock every run observes
	now time.Time
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceSuite))
}

func (s *ReconciliationServiceSuite) SetupSuite() {
	validator.NewValidator()
}

func (s *ReconciliationServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.usageStore = testutil.NewInMemoryUsageStore()
	s.subscriberStore = testutil.NewInMemorySubscriberStore()
	s.provider = testutil.NewMockMeteringProvider()
	s.notifier = testutil.NewMockNotifier()
	s.now = time.Date(2024, time.December, 10, 9, 30, 0, 0, time.UTC)

	cfg := &config.Configuration{
		Logging: config.LoggingConfig{Level: types.LogLevelInfo},
		Billing: config.BillingConfig{DefaultEventName: "booking.confirmed"},
	}
	log, err := logger.NewLogger(cfg)
	s.Require().NoError(err)

	s.service = &reconciliationService{
		subscriberRepo: s.subscriberStore,
		usageRepo:      s.usageStore,
		provider:       s.provider,
		notifier:       s.notifier,
		cfg:            cfg,
		logger:         log,
		now:            func() time.Time { return s.now },
	}
}

func (s *ReconciliationServiceSuite) addSubscriber(id string) *subscriber.Subscriber {
	sub := &subscriber.Subscriber{
		ID:                     id,
		Name:                   "Acme Salon",
		ExternalCustomerID:     "cus_" + id,
		ExternalSubscriptionID: "stripesub_" + id,
		BillingPeriod:          types.BILLING_PERIOD_MONTHLY,
		BillingPeriodCount:     1,
		BaseModel:              types.BaseModel{Status: types.StatusActive},
	}
	s.subscriberStore.Add(sub)
	return sub
}

// setProviderSubscription registers the provider-side record for sub with
// the given current period bounds. Pass zero times for a record without
// period information.
func (s *ReconciliationServiceSuite) setProviderSubscription(sub *subscriber.Subscriber, periodStart, periodEnd time.Time, item *metering.MeteredItem) {
	providerSub := &metering.Subscription{
		ID:          sub.ExternalSubscriptionID,
		CustomerID:  sub.ExternalCustomerID,
		MeteredItem: item,
	}
	if !periodStart.IsZero() {
		providerSub.CurrentPeriodStart = &periodStart
	}
	if !periodEnd.IsZero() {
		providerSub.CurrentPeriodEnd = &periodEnd
	}
	s.provider.SetSubscription(providerSub)
}

func (s *ReconciliationServiceSuite) addEvent(subscriberID string, occurredAt time.Time) *usage.Event {
	event := usage.NewEvent(subscriberID, occurredAt)
	s.Require().NoError(s.usageStore.Insert(s.ctx, event))
	return event
}

func (s *ReconciliationServiceSuite) TestBillsUnbilledUsageInProviderPeriod() {
	sub := s.addSubscriber("sub_01")
	periodStart := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	s.setProviderSubscription(sub, periodStart, periodEnd, &metering.MeteredItem{ID: "si_1"})

	inPeriod := []*usage.Event{
		s.addEvent(sub.ID, time.Date(2024, time.November, 20, 10, 0, 0, 0, time.UTC)),
		s.addEvent(sub.ID, time.Date(2024, time.November, 25, 11, 0, 0, 0, time.UTC)),
		s.addEvent(sub.ID, time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC)),
		s.addEvent(sub.ID, time.Date(2024, time.December, 10, 8, 0, 0, 0, time.UTC)),
	}
	outside := s.addEvent(sub.ID, time.Date(2024, time.December, 16, 9, 0, 0, 0, time.UTC))

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)

	item := resp.Items[0]
	s.Equal(dto.ReconciliationStatusCompleted, item.Status)
	s.Equal(int64(4), item.UnitsBilled)
	s.Equal(types.BillingPeriodSourceProvider, item.PeriodSource)
	s.Require().NotNil(item.PeriodStart)
	s.True(item.PeriodStart.Equal(periodStart))
	s.Require().NotNil(item.PeriodEnd)
	s.True(item.PeriodEnd.Equal(periodEnd))
	s.Equal(1, resp.Success)

	// One record per event, quantity 1, carrying the event's own
	// occurred-at timestamp and id
	submitted := s.provider.Submitted()
	s.Require().Len(submitted, 4)
	for i, record := range submitted {
		s.Equal(inPeriod[i].ID, record.ID)
		s.Equal(sub.ExternalCustomerID, record.CustomerID)
		s.Equal("si_1", record.ItemID)
		s.Equal("booking.confirmed", record.EventName)
		s.Equal(int64(1), record.Quantity)
		s.True(record.Timestamp.Equal(inPeriod[i].OccurredAt))
	}

	for _, event := range inPeriod {
		stored, ok := s.usageStore.Get(event.ID)
		s.Require().True(ok)
		s.True(stored.Billed)
		s.Require().NotNil(stored.BilledAt)
		s.True(stored.BilledAt.Equal(s.now))
	}

	stored, ok := s.usageStore.Get(outside.ID)
	s.Require().True(ok)
	s.False(stored.Billed)
	s.Nil(stored.BilledAt)

	notifications := s.notifier.Notifications()
	s.Require().Len(notifications, 1)
	s.Equal(sub.ID, notifications[0].SubscriberID)
	s.Equal(int64(4), notifications[0].UnitsBilled)
	s.True(notifications[0].BilledAt.Equal(s.now))
}

func (s *ReconciliationServiceSuite) TestSecondRunDispatchesNothing() {
	sub := s.addSubscriber("sub_01")
	periodStart := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	s.setProviderSubscription(sub, periodStart, periodEnd, &metering.MeteredItem{ID: "si_1"})
	s.addEvent(sub.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	s.addEvent(sub.ID, time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC))

	first, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(2), first.Items[0].UnitsBilled)

	second, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusCompleted, second.Items[0].Status)
	s.Equal(int64(0), second.Items[0].UnitsBilled)

	// No new dispatches or notifications on the second run
	s.Len(s.provider.Submitted(), 2)
	s.Len(s.notifier.Notifications(), 1)
}

func (s *ReconciliationServiceSuite) TestDispatchFailureLeavesBatchUnbilled() {
	sub := s.addSubscriber("sub_01")
	s.setProviderSubscription(sub,
		time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
		&metering.MeteredItem{ID: "si_1"})

	events := []*usage.Event{
		s.addEvent(sub.ID, time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC)),
		s.addEvent(sub.ID, time.Date(2024, time.November, 21, 0, 0, 0, 0, time.UTC)),
		s.addEvent(sub.ID, time.Date(2024, time.November, 22, 0, 0, 0, 0, time.UTC)),
	}

	// Provider accepts one record then rejects: a partial dispatch must
	// still leave the entire batch unbilled
	s.provider.SubmitErr = ierr.NewError("rate limited").Mark(ierr.ErrIntegration)
	s.provider.FailAfter = 1

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusFailed, resp.Items[0].Status)
	s.Equal(int64(0), resp.Items[0].UnitsBilled)
	s.Equal(1, resp.Failed)

	for _, event := range events {
		stored, ok := s.usageStore.Get(event.ID)
		s.Require().True(ok)
		s.False(stored.Billed)
	}
	s.Empty(s.notifier.Notifications())
}

func (s *ReconciliationServiceSuite) TestProviderPeriodTakesPrecedence() {
	sub := s.addSubscriber("sub_01")

	// The provider window is far from the current calendar month; events
	// inside it must be billed even though the calculated fallback window
	// would exclude them.
	periodStart := time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.November, 7, 0, 0, 0, 0, time.UTC)
	s.setProviderSubscription(sub, periodStart, periodEnd, &metering.MeteredItem{ID: "si_1"})

	anchored := s.addEvent(sub.ID, time.Date(2024, time.October, 20, 0, 0, 0, 0, time.UTC))
	calendarOnly := s.addEvent(sub.ID, time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)

	item := resp.Items[0]
	s.Equal(dto.ReconciliationStatusCompleted, item.Status)
	s.Equal(types.BillingPeriodSourceProvider, item.PeriodSource)
	s.Equal(int64(1), item.UnitsBilled)

	stored, _ := s.usageStore.Get(anchored.ID)
	s.True(stored.Billed)
	stored, _ = s.usageStore.Get(calendarOnly.ID)
	s.False(stored.Billed)
}

func (s *ReconciliationServiceSuite) TestCalculatedPeriodFallback() {
	sub := s.addSubscriber("sub_01")

	// Provider record without period bounds: the window falls back to the
	// previous calendar month, [Nov 1, Dec 1), given now = Dec 10
	s.setProviderSubscription(sub, time.Time{}, time.Time{}, &metering.MeteredItem{ID: "si_1"})

	inWindow := s.addEvent(sub.ID, time.Date(2024, time.November, 5, 0, 0, 0, 0, time.UTC))
	tooOld := s.addEvent(sub.ID, time.Date(2024, time.October, 20, 0, 0, 0, 0, time.UTC))
	currentMonth := s.addEvent(sub.ID, time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)

	item := resp.Items[0]
	s.Equal(dto.ReconciliationStatusCompleted, item.Status)
	s.Equal(types.BillingPeriodSourceCalculated, item.PeriodSource)
	s.Equal(int64(1), item.UnitsBilled)
	s.True(item.PeriodStart.Equal(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)))
	s.True(item.PeriodEnd.Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))

	stored, _ := s.usageStore.Get(inWindow.ID)
	s.True(stored.Billed)
	stored, _ = s.usageStore.Get(tooOld.ID)
	s.False(stored.Billed)
	stored, _ = s.usageStore.Get(currentMonth.ID)
	s.False(stored.Billed)
}

func (s *ReconciliationServiceSuite) TestUnknownBillingPeriodDefaultsToMonthly() {
	sub := s.addSubscriber("sub_01")
	sub.BillingPeriod = types.BillingPeriod("FORTNIGHTLY")
	sub.BillingPeriodCount = 0
	s.subscriberStore.Add(sub)
	s.setProviderSubscription(sub, time.Time{}, time.Time{}, &metering.MeteredItem{ID: "si_1"})

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)

	item := resp.Items[0]
	s.Equal(dto.ReconciliationStatusCompleted, item.Status)
	s.True(item.PeriodStart.Equal(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)))
	s.True(item.PeriodEnd.Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func (s *ReconciliationServiceSuite) TestEventNamePrecedence() {
	testCases := []struct {
		name     string
		item     *metering.MeteredItem
		expected string
	}{
		{
			name:     "price metadata wins over product metadata",
			item:     &metering.MeteredItem{ID: "si_1", EventName: "appointment.held", ProductEventName: "booking.confirmed"},
			expected: "appointment.held",
		},
		{
			name:     "product metadata used when price has none",
			item:     &metering.MeteredItem{ID: "si_1", ProductEventName: "appointment.held"},
			expected: "appointment.held",
		},
		{
			name:     "configured default when neither is set",
			item:     &metering.MeteredItem{ID: "si_1"},
			expected: "booking.confirmed",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			sub := s.addSubscriber("sub_01")
			s.setProviderSubscription(sub,
				time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
				tc.item)
			s.addEvent(sub.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))

			_, err := s.service.ReconcileAll(s.ctx, nil)
			s.Require().NoError(err)

			submitted := s.provider.Submitted()
			s.Require().Len(submitted, 1)
			s.Equal(tc.expected, submitted[0].EventName)
		})
	}
}

func (s *ReconciliationServiceSuite) TestSubscriberFailureIsolation() {
	subA := s.addSubscriber("sub_a")
	subB := s.addSubscriber("sub_b")
	periodStart := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	s.setProviderSubscription(subA, periodStart, periodEnd, &metering.MeteredItem{ID: "si_a"})
	s.setProviderSubscription(subB, periodStart, periodEnd, &metering.MeteredItem{ID: "si_b"})

	eventA := s.addEvent(subA.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	eventB := s.addEvent(subB.ID, time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC))

	// Fail dispatch for subscriber A only; B is processed after A and
	// must complete normally
	s.provider.OnSubmit = func(records []*metering.UsageRecord) {
		if records[0].CustomerID == subA.ExternalCustomerID {
			s.provider.SubmitErr = ierr.NewError("meter event rejected").Mark(ierr.ErrIntegration)
		} else {
			s.provider.SubmitErr = nil
		}
	}

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(2, resp.Total)
	s.Equal(1, resp.Success)
	s.Equal(1, resp.Failed)

	itemA, ok := lo.Find(resp.Items, func(i *dto.ReconciliationItem) bool { return i.SubscriberID == subA.ID })
	s.Require().True(ok)
	s.Equal(dto.ReconciliationStatusFailed, itemA.Status)

	itemB, ok := lo.Find(resp.Items, func(i *dto.ReconciliationItem) bool { return i.SubscriberID == subB.ID })
	s.Require().True(ok)
	s.Equal(dto.ReconciliationStatusCompleted, itemB.Status)

	stored, _ := s.usageStore.Get(eventA.ID)
	s.False(stored.Billed)
	stored, _ = s.usageStore.Get(eventB.ID)
	s.True(stored.Billed)

	notifications := s.notifier.Notifications()
	s.Require().Len(notifications, 1)
	s.Equal(subB.ID, notifications[0].SubscriberID)
}

func (s *ReconciliationServiceSuite) TestProviderFetchFailureSkipsSubscriber() {
	sub := s.addSubscriber("sub_01")
	event := s.addEvent(sub.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	s.provider.GetErr = ierr.NewError("stripe unavailable").Mark(ierr.ErrIntegration)

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusSkipped, resp.Items[0].Status)
	s.Equal(1, resp.Skipped)

	stored, _ := s.usageStore.Get(event.ID)
	s.False(stored.Billed)
	s.Empty(s.provider.Submitted())
	s.Empty(s.notifier.Notifications())
}

func (s *ReconciliationServiceSuite) TestMissingCustomerLinkageSkipsSubscriber() {
	sub := s.addSubscriber("sub_01")
	sub.ExternalCustomerID = ""
	s.subscriberStore.Add(sub)

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusSkipped, resp.Items[0].Status)
}

func (s *ReconciliationServiceSuite) TestNoMeteredItemSkipsSubscriber() {
	sub := s.addSubscriber("sub_01")
	s.setProviderSubscription(sub,
		time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
		nil)
	event := s.addEvent(sub.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusSkipped, resp.Items[0].Status)

	stored, _ := s.usageStore.Get(event.ID)
	s.False(stored.Billed)
}

func (s *ReconciliationServiceSuite) TestConcurrentInsertNotSweptIntoCommit() {
	sub := s.addSubscriber("sub_01")
	periodStart := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	s.setProviderSubscription(sub, periodStart, periodEnd, &metering.MeteredItem{ID: "si_1"})

	s.addEvent(sub.ID, time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC))
	s.addEvent(sub.ID, time.Date(2024, time.November, 21, 0, 0, 0, 0, time.UTC))

	// A new in-period event arrives after the batch was queried but
	// before the commit; it must stay out of this run's id set
	var lateID string
	s.provider.OnSubmit = func(records []*metering.UsageRecord) {
		late := s.addEvent(sub.ID, time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC))
		lateID = late.ID
	}

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(2), resp.Items[0].UnitsBilled)

	submitted := s.provider.Submitted()
	s.Require().Len(submitted, 2)
	for _, record := range submitted {
		s.NotEqual(lateID, record.ID)
	}

	stored, ok := s.usageStore.Get(lateID)
	s.Require().True(ok)
	s.False(stored.Billed)

	notifications := s.notifier.Notifications()
	s.Require().Len(notifications, 1)
	s.Equal(int64(2), notifications[0].UnitsBilled)
}

func (s *ReconciliationServiceSuite) TestOverlappingRunRejected() {
	sub := s.addSubscriber("sub_01")
	s.setProviderSubscription(sub,
		time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
		&metering.MeteredItem{ID: "si_1"})
	s.addEvent(sub.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))

	var overlapErr error
	s.provider.OnSubmit = func(records []*metering.UsageRecord) {
		_, overlapErr = s.service.ReconcileAll(s.ctx, nil)
	}

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusCompleted, resp.Items[0].Status)

	s.Require().Error(overlapErr)
	s.True(ierr.IsInvalidOperation(overlapErr))
}

func (s *ReconciliationServiceSuite) TestCancelledContextStopsBetweenSubscribers() {
	subA := s.addSubscriber("sub_a")
	subB := s.addSubscriber("sub_b")
	periodStart := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	s.setProviderSubscription(subA, periodStart, periodEnd, &metering.MeteredItem{ID: "si_a"})
	s.setProviderSubscription(subB, periodStart, periodEnd, &metering.MeteredItem{ID: "si_b"})
	s.addEvent(subA.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))
	s.addEvent(subB.ID, time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(s.ctx)

	// Cancel while subscriber A is mid-flight: A finishes its dispatch
	// and commit, B is never started
	s.provider.OnSubmit = func(records []*metering.UsageRecord) {
		cancel()
	}

	resp, err := s.service.ReconcileAll(ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal(subA.ID, resp.Items[0].SubscriberID)
	s.Equal(dto.ReconciliationStatusCompleted, resp.Items[0].Status)
}

func (s *ReconciliationServiceSuite) TestNotifierFailureDoesNotAffectBilling() {
	sub := s.addSubscriber("sub_01")
	s.setProviderSubscription(sub,
		time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
		&metering.MeteredItem{ID: "si_1"})
	event := s.addEvent(sub.ID, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC))

	s.notifier.Err = ierr.NewError("webhook endpoint down").Mark(ierr.ErrHTTPClient)

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusCompleted, resp.Items[0].Status)
	s.Equal(int64(1), resp.Items[0].UnitsBilled)

	stored, _ := s.usageStore.Get(event.ID)
	s.True(stored.Billed)
}

func (s *ReconciliationServiceSuite) TestNoNotificationForZeroUnits() {
	sub := s.addSubscriber("sub_01")
	s.setProviderSubscription(sub,
		time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
		&metering.MeteredItem{ID: "si_1"})

	resp, err := s.service.ReconcileAll(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(dto.ReconciliationStatusCompleted, resp.Items[0].Status)
	s.Equal(int64(0), resp.Items[0].UnitsBilled)
	s.Empty(s.notifier.Notifications())
}
