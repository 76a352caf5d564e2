package stripe

import (
	"github.com/bookflow/bookflow/internal/config"
	ierr "github.com/bookflow/bookflow/internal/errors"
	"github.com/bookflow/bookflow/internal/logger"
	"github.com/stripe/stripe-go/v82"
)

// Client handles Stripe API client setup and configuration
type Client struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewClient creates a new Stripe client
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// GetStripeClient returns a configured Stripe API client
func (c *Client) GetStripeClient() (*stripe.Client, error) {
	secretKey := c.cfg.Stripe.SecretKey
	if secretKey == "" {
		return nil, ierr.NewError("stripe secret key not configured").
			WithHint("Set stripe.secretkey in the configuration").
			Mark(ierr.ErrValidation)
	}

	return stripe.NewClient(secretKey, nil), nil
}
