// Package email provides email templates.
package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"text/template"
)

// OrderInfo contains the information needed for order email templates
type OrderInfo struct {
	OrderID       int64
	CustomerName  string
	CustomerEmail string
	Total         string
	PaymentID     string
	OrderURL      string
}

// Renderer renders the built-in email templates
type Renderer struct {
	text *template.Template
	html *htmltemplate.Template
}

const templateOrderPaid = "order_paid"

// NewRenderer creates a new email template renderer with built-in templates
func NewRenderer() (*Renderer, error) {
	text, err := template.New(templateOrderPaid).Parse(orderPaidText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template %s: %w", templateOrderPaid, err)
	}
	html, err := htmltemplate.New(templateOrderPaid).Parse(orderPaidHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML template %s: %w", templateOrderPaid, err)
	}

	return &Renderer{
		text: text,
		html: html,
	}, nil
}

// RenderOrderPaid renders the payment confirmation email for an order
func (r *Renderer) RenderOrderPaid(ctx context.Context, data *OrderInfo) (*Email, error) {
	_ = ctx
	if data == nil {
		return nil, fmt.Errorf("order info is required")
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := r.html.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}
	if err := r.text.Execute(&textBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render text template: %w", err)
	}

	return &Email{
		To:      data.CustomerEmail,
		Subject: fmt.Sprintf("Next Pizza / Your order #%d has been paid", data.OrderID),
		Text:    textBuf.String(),
		HTML:    htmlBuf.String(),
	}, nil
}

// SendOrderPaid sends the payment confirmation email
func SendOrderPaid(ctx context.Context, p Provider, orderInfo *OrderInfo) error {
	if p == nil {
		return nil
	}

	renderer, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	email, err := renderer.RenderOrderPaid(ctx, orderInfo)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.SendEmail(ctx, email)
}

const orderPaidText = `Thank you for your order!
{{if .CustomerName}}
Hi {{.CustomerName}},
{{end}}
You successfully paid €{{.Total}} for your order #{{.OrderID}}.
Payment reference: {{.PaymentID}}
{{if .OrderURL}}
Order details: {{.OrderURL}}
{{end}}
Would you like to make a new order? Just come back to the menu.
`

const orderPaidHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <h1>Thank you!</h1>
  {{if .CustomerName}}<p>Hi {{.CustomerName}},</p>{{end}}
  <p>You successfully paid <strong>€{{.Total}}</strong> for your order <strong>#{{.OrderID}}</strong>.</p>
  <p>Payment reference: {{.PaymentID}}</p>
  {{if .OrderURL}}<p><a href="{{.OrderURL}}">View your order</a></p>{{end}}
</body>
</html>
`
