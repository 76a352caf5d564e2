package stripe

import (
	"context"
	"strconv"
	"time"

	"github.com/bookflow/bookflow/internal/domain/metering"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/cenkalti/backoff/v4"
	"github.com/stripe/stripe-go/v82"
)

// eventNameMetadataKey is the price/product metadata key carrying the
// metered event label.
const eventNameMetadataKey = "event_name"

// meteringProvider implements metering.Provider on top of Stripe's
// subscription and billing meter event APIs.
type meteringProvider struct {
	client *Client
	logger *logger.Logger
}

func NewMeteringProvider(client *Client, logger *logger.Logger) metering.Provider {
	return &meteringProvider{
		client: client,
		logger: logger,
	}
}

// GetSubscription fetches the live Stripe subscription with its items and
// product metadata expanded. Transient failures are retried briefly; the
// caller falls back to a calculated billing period when this returns an
// error.
func (p *meteringProvider) GetSubscription(ctx context.Context, subscriptionID string) (*metering.Subscription, error) {
	stripeClient, err := p.client.GetStripeClient()
	if err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionRetrieveParams{
		Expand: []*string{
			stripe.String("customer"),
			stripe.String("items.data.price.product"),
		},
	}

	var stripeSub *stripe.Subscription
	operation := func() error {
		var retrieveErr error
		stripeSub, retrieveErr = stripeClient.V1Subscriptions.Retrieve(ctx, subscriptionID, params)
		if retrieveErr != nil && !isRetryable(retrieveErr) {
			return backoff.Permanent(retrieveErr)
		}
		return retrieveErr
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		p.logger.Warnw("failed to retrieve subscription from Stripe",
			"error", err,
			"subscription_id", subscriptionID,
		)
		return nil, ierr.WithError(err).
			WithHint("Could not fetch subscription information from Stripe").
			WithReportableDetails(map[string]any{
				"subscription_id": subscriptionID,
			}).
			Mark(ierr.ErrIntegration)
	}

	return toMeteringSubscription(stripeSub), nil
}

// SubmitUsageRecords emits one meter event per record. The first rejection
// aborts the loop and fails the whole batch; the ledger event id rides
// along as the meter event identifier so Stripe deduplicates records that
// are re-dispatched after a failed run.
func (p *meteringProvider) SubmitUsageRecords(ctx context.Context, records []*metering.UsageRecord) error {
	stripeClient, err := p.client.GetStripeClient()
	if err != nil {
		return err
	}

	for _, record := range records {
		params := &stripe.BillingMeterEventCreateParams{
			EventName:  stripe.String(record.EventName),
			Identifier: stripe.String(record.ID),
			Payload: map[string]string{
				"stripe_customer_id": record.CustomerID,
				"value":              strconv.FormatInt(record.Quantity, 10),
			},
			Timestamp: stripe.Int64(record.Timestamp.Unix()),
		}

		if _, err := stripeClient.V1BillingMeterEvents.Create(ctx, params); err != nil {
			return p.wrapMeterEventError(err, record)
		}
	}

	return nil
}

func (p *meteringProvider) wrapMeterEventError(err error, record *metering.UsageRecord) error {
	var stripeErr *stripe.Error
	if ierr.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
		// Unknown meter/event name or malformed linkage: the subscriber
		// is unprocessable this run, not a transient outage.
		return ierr.WithError(err).
			WithHint("Stripe rejected the usage record; check the meter configuration").
			WithReportableDetails(map[string]any{
				"event_id":   record.ID,
				"event_name": record.EventName,
			}).
			Mark(ierr.ErrValidation)
	}

	return ierr.WithError(err).
		WithHint("Failed to submit usage record to Stripe").
		WithReportableDetails(map[string]any{
			"event_id": record.ID,
		}).
		Mark(ierr.ErrIntegration)
}

func toMeteringSubscription(stripeSub *stripe.Subscription) *metering.Subscription {
	sub := &metering.Subscription{
		ID: stripeSub.ID,
	}
	if stripeSub.Customer != nil {
		sub.CustomerID = stripeSub.Customer.ID
	}

	item := findMeteredItem(stripeSub)
	if item == nil {
		return sub
	}

	sub.MeteredItem = &metering.MeteredItem{
		ID:        item.ID,
		EventName: item.Price.Metadata[eventNameMetadataKey],
	}
	if item.Price.Product != nil {
		sub.MeteredItem.ProductEventName = item.Price.Product.Metadata[eventNameMetadataKey]
	}

	// Billing cycle bounds live on the subscription item and carry the
	// subscriber's actual anchor instant.
	if item.CurrentPeriodStart > 0 && item.CurrentPeriodEnd > 0 {
		start := time.Unix(item.CurrentPeriodStart, 0).UTC()
		end := time.Unix(item.CurrentPeriodEnd, 0).UTC()
		sub.CurrentPeriodStart = &start
		sub.CurrentPeriodEnd = &end
	}

	return sub
}

func findMeteredItem(stripeSub *stripe.Subscription) *stripe.SubscriptionItem {
	if stripeSub.Items == nil {
		return nil
	}
	for _, item := range stripeSub.Items.Data {
		if item.Price == nil || item.Price.Recurring == nil {
			continue
		}
		if item.Price.Recurring.UsageType == stripe.PriceRecurringUsageTypeMetered {
			return item
		}
	}
	return nil
}

func isRetryable(err error) bool {
	var stripeErr *stripe.Error
	if ierr.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode >= 500 || stripeErr.HTTPStatusCode == 429
	}
	// Network level failures come back as plain errors
	return true
}
