package subscriber

import (
	"context"
)

type Repository interface {
	// Get retrieves a subscriber by id
	Get(ctx context.Context, id string) (*Subscriber, error)

	// ListActiveMetered returns all subscribers with an active metered
	// subscription, the population of one reconciliation batch.
	ListActiveMetered(ctx context.Context) ([]*Subscriber, error)
}
