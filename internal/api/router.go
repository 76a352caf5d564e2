package api

import (
	"github.com/bookflow/bookflow/internal/api/cron"
	v1 "github.com/bookflow/bookflow/internal/api/v1"
	"github.com/bookflow/bookflow/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health             *v1.HealthHandler
	Usage              *v1.UsageHandler
	CronReconciliation *cron.ReconciliationHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(requestIDMiddleware())

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	{
		usageGroup := v1Group.Group("/usage")
		{
			usageGroup.POST("", handlers.Usage.IngestUsageEvent)
		}
	}

	// Cron routes, invoked by the external scheduler
	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/reconciliation", handlers.CronReconciliation.RunReconciliation)
	}

	return router
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("x-request-id")
		if requestID == "" {
			requestID = types.GenerateShortIDWithPrefix("req_")
		}
		c.Request = c.Request.WithContext(
			types.SetRequestID(c.Request.Context(), requestID),
		)
		c.Header("x-request-id", requestID)
		c.Next()
	}
}
