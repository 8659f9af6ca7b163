// Package stripe provides Stripe payment lookups.
package stripe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v84"
)

// PaymentIntent is the part of a Stripe payment intent used to confirm an order.
type PaymentIntent struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
	Metadata map[string]string
}

func (p *PaymentIntent) Succeeded() bool {
	return p != nil && p.Status == string(stripe.PaymentIntentStatusSucceeded)
}

// PaymentClient reads payment intents from Stripe.
type PaymentClient struct {
	client *stripe.Client
}

// NewPaymentClient creates a client for secretKey. A nil httpClient uses the
// Stripe default.
func NewPaymentClient(secretKey string, httpClient *http.Client) *PaymentClient {
	if httpClient == nil {
		return &PaymentClient{client: stripe.NewClient(secretKey)}
	}

	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		HTTPClient: httpClient,
	})
	return &PaymentClient{
		client: stripe.NewClient(secretKey, stripe.WithBackends(backends)),
	}
}

func (c *PaymentClient) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is required")
	}
	if strings.TrimSpace(paymentIntentID) == "" {
		return nil, fmt.Errorf("payment intent id is required")
	}

	intent, err := c.client.V1PaymentIntents.Retrieve(ctx, paymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	return fromStripe(intent), nil
}

func fromStripe(intent *stripe.PaymentIntent) *PaymentIntent {
	if intent == nil {
		return nil
	}
	return &PaymentIntent{
		ID:       intent.ID,
		Status:   string(intent.Status),
		Amount:   intent.Amount,
		Currency: string(intent.Currency),
		Metadata: intent.Metadata,
	}
}
