package cron

import (
	"net/http"
	"time"

	"github.com/bookflow/bookflow/internal/api/dto"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/service"
	"github.com/gin-gonic/gin"
)

// ReconciliationHandler exposes the usage reconciliation batch to the
// external scheduler and to operators for manual re-runs.
type ReconciliationHandler struct {
	reconciliationService service.ReconciliationService
	logger                *logger.Logger
}

func NewReconciliationHandler(
	reconciliationService service.ReconciliationService,
	logger *logger.Logger,
) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
		logger:                logger,
	}
}

// RunReconciliation triggers a reconciliation batch over all active
// metered subscribers
func (h *ReconciliationHandler) RunReconciliation(c *gin.Context) {
	h.logger.Infow("starting usage reconciliation cron job",
		"time", time.Now().UTC().Format(time.RFC3339),
	)

	ctx := c.Request.Context()

	// Request body is optional; an empty body runs with defaults
	var req dto.RunReconciliationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Errorw("failed to parse request parameters", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
			return
		}
	}

	response, err := h.reconciliationService.ReconcileAll(ctx, &req)
	if err != nil {
		h.logger.Errorw("reconciliation run failed", "error", err)
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, response)
}
