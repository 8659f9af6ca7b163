package services

import (
	"context"
	"fmt"

	"github.com/nextpizza/storefront/internal/db"
	"github.com/nextpizza/storefront/internal/email"
)

type OrderEmailSender interface {
	SendOrderPaid(ctx context.Context, order *db.Order) error
}

type ProviderOrderEmailSender struct {
	provider email.Provider
	baseURL  string
}

func NewOrderEmailSender(provider email.Provider, baseURL string) *ProviderOrderEmailSender {
	return &ProviderOrderEmailSender{
		provider: provider,
		baseURL:  baseURL,
	}
}

func (s *ProviderOrderEmailSender) SendOrderPaid(ctx context.Context, order *db.Order) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	if s == nil || s.provider == nil {
		return fmt.Errorf("email provider is not configured")
	}
	if order.Email == "" {
		return fmt.Errorf("order %d has no email address", order.ID)
	}

	return email.SendOrderPaid(ctx, s.provider, BuildOrderInfo(order, s.baseURL))
}

type noopOrderEmailSender struct{}

func (noopOrderEmailSender) SendOrderPaid(context.Context, *db.Order) error {
	return nil
}
