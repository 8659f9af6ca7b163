package services

import (
	"fmt"
	"strings"

	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/db"
	"github.com/nextpizza/storefront/internal/email"
)

// BuildOrderInfo builds a consistent OrderInfo payload for email templates.
func BuildOrderInfo(order *db.Order, baseURL string) *email.OrderInfo {
	if order == nil {
		return &email.OrderInfo{}
	}

	info := &email.OrderInfo{
		OrderID:       order.ID,
		CustomerName:  strings.TrimSpace(order.FullName),
		CustomerEmail: strings.TrimSpace(order.Email),
		Total:         catalog.FormatPrice(order.TotalAmount),
		PaymentID:     order.PaymentID,
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" {
		info.OrderURL = fmt.Sprintf("%s/orders/%d", baseURL, order.ID)
	}

	return info
}

// PaymentSuccessMessage is the text shown on the success page for a paid order.
func PaymentSuccessMessage(order *db.Order) string {
	return fmt.Sprintf("You successfully paid €%s for your order #%d", catalog.FormatPrice(order.TotalAmount), order.ID)
}
