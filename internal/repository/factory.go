package repository

import (
	"github.com/bookflow/bookflow/internal/domain/subscriber"
	"github.com/bookflow/bookflow/internal/domain/usage"
	"github.com/bookflow/bookflow/internal/logger"
	pgclient "github.com/bookflow/bookflow/internal/postgres"
	pgrepo "github.com/bookflow/bookflow/internal/repository/postgres"
)

func NewUsageRepository(db *pgclient.DB, logger *logger.Logger) usage.Repository {
	return pgrepo.NewUsageRepository(db, logger)
}

func NewSubscriberRepository(db *pgclient.DB, logger *logger.Logger) subscriber.Repository {
	return pgrepo.NewSubscriberRepository(db, logger)
}
