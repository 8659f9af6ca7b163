// Package email provides email provider interface.
package email

import (
	"context"
	"fmt"
	"net/http"
)

type Provider interface {
	SendEmail(ctx context.Context, email *Email) error
	ValidateAPIKey(ctx context.Context) error
}

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Config struct {
	Provider   string
	APIKey     string
	From       string
	HTTPClient *http.Client
}

func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "resend", "":
		if config.APIKey == "" {
			return nil, fmt.Errorf("resend API key is required")
		}
		return NewResendProvider(config.APIKey, config.From, config.HTTPClient), nil
	default:
		return nil, fmt.Errorf("EMAIL_PROVIDER must be 'resend'")
	}
}
