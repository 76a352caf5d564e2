package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookflow/bookflow/internal/config"
	"github.com/bookflow/bookflow/internal/domain/notification"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// notifier delivers usage-billed notifications as signed-off JSON webhook
// posts. Delivery failures are surfaced to the caller for logging only;
// billing state is never rolled back on notification failure.
type notifier struct {
	cfg    *config.Configuration
	client *retryablehttp.Client
	logger *logger.Logger
}

func NewNotifier(cfg *config.Configuration, logger *logger.Logger) notification.Notifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	if cfg.Webhook.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Webhook.Timeout
	}

	return &notifier{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

func (n *notifier) NotifyUsageBilled(ctx context.Context, msg *notification.UsageBilledNotification) error {
	url := n.cfg.Webhook.UsageNotificationURL
	if url == "" {
		n.logger.Debugw("usage notification webhook not configured, skipping",
			"subscriber_id", msg.SubscriberID,
		)
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode usage notification").
			Mark(ierr.ErrInternal)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build usage notification request").
			Mark(ierr.ErrHTTPClient)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to deliver usage notification").
			WithReportableDetails(map[string]any{
				"subscriber_id": msg.SubscriberID,
				"units_billed":  msg.UnitsBilled,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ierr.NewError("usage notification rejected").
			WithHintf("Notification endpoint returned status %d", resp.StatusCode).
			WithReportableDetails(map[string]any{
				"subscriber_id": msg.SubscriberID,
				"status_code":   resp.StatusCode,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	n.logger.Infow("usage notification delivered",
		"subscriber_id", msg.SubscriberID,
		"units_billed", msg.UnitsBilled,
	)
	return nil
}
