package v1

import (
	"net/http"

	"github.com/bookflow/bookflow/internal/api/dto"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/bookflow/bookflow/internal/service"
	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	usageService service.UsageService
	logger       *logger.Logger
}

func NewUsageHandler(usageService service.UsageService, logger *logger.Logger) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		logger:       logger,
	}
}

// IngestUsageEvent records one billable action for a subscriber
func (h *UsageHandler) IngestUsageEvent(c *gin.Context) {
	var req dto.IngestUsageEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ierr.NewErrorResponse(err))
		return
	}

	event, err := h.usageService.IngestUsageEvent(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to ingest usage event",
			"subscriber_id", req.SubscriberID,
			"error", err,
		)
		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		return
	}

	c.JSON(http.StatusAccepted, dto.IngestUsageEventResponse{Event: event})
}
