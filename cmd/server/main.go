package main

import (
	"context"
	"time"

	"github.com/bookflow/bookflow/internal/api"
	"github.com/bookflow/bookflow/internal/api/cron"
	v1 "github.com/bookflow/bookflow/internal/api/v1"
	"github.com/bookflow/bookflow/internal/config"
	"github.com/bookflow/bookflow/internal/integration/stripe"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/postgres"
	"github.com/bookflow/bookflow/internal/repository"
	"github.com/bookflow/bookflow/internal/service"
	"github.com/bookflow/bookflow/internal/types"
	"github.com/bookflow/bookflow/internal/validator"
	"github.com/bookflow/bookflow/internal/webhook"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewUsageRepository,
			repository.NewSubscriberRepository,

			// Metering provider
			stripe.NewClient,
			stripe.NewMeteringProvider,

			// Notifications
			webhook.NewNotifier,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewUsageService,
			service.NewReconciliationService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	usageService service.UsageService,
	reconciliationService service.ReconciliationService,
) api.Handlers {
	return api.Handlers{
		Health:             v1.NewHealthHandler(logger),
		Usage:              v1.NewUsageHandler(usageService, logger),
		CronReconciliation: cron.NewReconciliationHandler(reconciliationService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
