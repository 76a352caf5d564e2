package postgres

import (
	"context"
	"database/sql"

	"github.com/bookflow/bookflow/internal/domain/subscriber"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/postgres"
	"github.com/bookflow/bookflow/internal/types"
	"github.com/cockroachdb/errors"
)

type subscriberRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriberRepository(db *postgres.DB, logger *logger.Logger) subscriber.Repository {
	return &subscriberRepository{db: db, logger: logger}
}

func (r *subscriberRepository) Get(ctx context.Context, id string) (*subscriber.Subscriber, error) {
	query := `
	SELECT id, name, external_customer_id, external_subscription_id,
	       billing_period, billing_period_count,
	       status, created_at, updated_at, created_by, updated_by
	FROM subscribers
	WHERE id = $1 AND status = $2
	`

	var s subscriber.Subscriber
	err := r.db.GetContext(ctx, &s, query, id, types.StatusActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("subscriber not found").
				WithHintf("Subscriber with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscriber").
			Mark(ierr.ErrDatabase)
	}

	return &s, nil
}

func (r *subscriberRepository) ListActiveMetered(ctx context.Context) ([]*subscriber.Subscriber, error) {
	query := `
	SELECT id, name, external_customer_id, external_subscription_id,
	       billing_period, billing_period_count,
	       status, created_at, updated_at, created_by, updated_by
	FROM subscribers
	WHERE status = $1
	  AND external_subscription_id <> ''
	ORDER BY created_at ASC
	`

	var subscribers []*subscriber.Subscriber
	err := r.db.SelectContext(ctx, &subscribers, query, types.StatusActive)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list active metered subscribers").
			Mark(ierr.ErrDatabase)
	}

	return subscribers, nil
}
