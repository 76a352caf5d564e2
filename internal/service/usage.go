package service

import (
	"context"

	"github.com/bookflow/bookflow/internal/api/dto"
	"github.com/bookflow/bookflow/internal/domain/subscriber"
	"github.com/bookflow/bookflow/internal/domain/usage"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/validator"
)

// UsageService is the producer side of the usage ledger: it appends one
// unbilled event per billable action.
type UsageService interface {
	IngestUsageEvent(ctx context.Context, req *dto.IngestUsageEventRequest) (*usage.Event, error)
}

type usageService struct {
	usageRepo      usage.Repository
	subscriberRepo subscriber.Repository
	logger         *logger.Logger
}

func NewUsageService(
	usageRepo usage.Repository,
	subscriberRepo subscriber.Repository,
	logger *logger.Logger,
) UsageService {
	return &usageService{
		usageRepo:      usageRepo,
		subscriberRepo: subscriberRepo,
		logger:         logger,
	}
}

func (s *usageService) IngestUsageEvent(ctx context.Context, req *dto.IngestUsageEventRequest) (*usage.Event, error) {
	if req == nil {
		return nil, ierr.NewError("request cannot be nil").
			WithHint("Request cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.subscriberRepo.Get(ctx, req.SubscriberID); err != nil {
		return nil, err
	}

	event := req.ToEvent()
	if err := s.usageRepo.Insert(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Debugw("usage event ingested",
		"event_id", event.ID,
		"subscriber_id", event.SubscriberID,
		"occurred_at", event.OccurredAt,
	)

	return event, nil
}
