package postgres

import (
	"context"
	"time"

	"github.com/bookflow/bookflow/internal/domain/usage"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/postgres"
	"github.com/bookflow/bookflow/internal/types"
	"github.com/lib/pq"
)

type usageRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUsageRepository(db *postgres.DB, logger *logger.Logger) usage.Repository {
	return &usageRepository{db: db, logger: logger}
}

func (r *usageRepository) Insert(ctx context.Context, event *usage.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	query := `
	INSERT INTO usage_events (
		id, subscriber_id, occurred_at, billed, billed_at, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6
	)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.SubscriberID,
		event.OccurredAt,
		event.Billed,
		event.BilledAt,
		event.CreatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to insert usage event").
			WithReportableDetails(map[string]any{
				"event_id":      event.ID,
				"subscriber_id": event.SubscriberID,
			}).
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *usageRepository) ListUnbilled(ctx context.Context, subscriberID string, period types.BillingPeriodWindow) ([]*usage.Event, error) {
	query := `
	SELECT id, subscriber_id, occurred_at, billed, billed_at, created_at
	FROM usage_events
	WHERE subscriber_id = $1
	  AND billed = FALSE
	  AND occurred_at >= $2
	  AND occurred_at < $3
	ORDER BY occurred_at ASC, id ASC
	`

	var events []*usage.Event
	err := r.db.SelectContext(ctx, &events, query, subscriberID, period.Start, period.End)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list unbilled usage events").
			WithReportableDetails(map[string]any{
				"subscriber_id": subscriberID,
				"period_start":  period.Start,
				"period_end":    period.End,
			}).
			Mark(ierr.ErrDatabase)
	}

	return events, nil
}

func (r *usageRepository) CountInPeriod(ctx context.Context, subscriberID string, period types.BillingPeriodWindow) (*usage.PeriodCounts, error) {
	query := `
	SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE billed) AS billed
	FROM usage_events
	WHERE subscriber_id = $1
	  AND occurred_at >= $2
	  AND occurred_at < $3
	`

	var counts usage.PeriodCounts
	err := r.db.QueryRowContext(ctx, query, subscriberID, period.Start, period.End).
		Scan(&counts.Total, &counts.Billed)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to count usage events in period").
			WithReportableDetails(map[string]any{
				"subscriber_id": subscriberID,
			}).
			Mark(ierr.ErrDatabase)
	}

	return &counts, nil
}

func (r *usageRepository) MarkBilled(ctx context.Context, ids []string, billedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	// The predicate is scoped to the exact id set that was dispatched,
	// never to "all unbilled in period": events inserted after the
	// selecting query must stay untouched.
	query := `
	UPDATE usage_events
	SET billed = TRUE, billed_at = $1
	WHERE id = ANY($2)
	  AND billed = FALSE
	`

	res, err := r.db.ExecContext(ctx, query, billedAt, pq.Array(ids))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to mark usage events as billed").
			WithReportableDetails(map[string]any{
				"event_count": len(ids),
			}).
			Mark(ierr.ErrDatabase)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to read affected row count").
			Mark(ierr.ErrDatabase)
	}

	return affected, nil
}
