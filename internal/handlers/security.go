package handlers

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/getsentry/sentry-go/attribute"

	"github.com/nextpizza/storefront/internal/observability"
)

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	// Views carry prices and order totals.
	{"Cache-Control", "no-store"},
}

var errMissingOrigin = errors.New("request has neither origin nor referer")

// SecurityHeaders sets baseline security headers for all responses.
func (h *Handlers) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		for _, header := range securityHeaders {
			headers.Set(header[0], header[1])
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSameOrigin blocks cross-origin POST, PUT, PATCH and DELETE requests.
// Both Origin and Referer must point at the request host or BASE_URL when
// present, and at least one of them must be.
func (h *Handlers) RequireSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requestMutatesState(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		meter := observability.MeterFromContext(r.Context())
		meter.SetAttributes(attribute.String("component", "security.same_origin"))
		meter.Count("security.same_origin.checked", 1)

		if reason, err := h.checkSameOrigin(r); err != nil {
			observability.CountRejected(r.Context(), "security.same_origin.blocked", reason)
			h.loggerFromContext(r.Context()).Warn("blocked cross-origin request",
				"reason", reason,
				"origin", r.Header.Get("Origin"),
				"referer", r.Header.Get("Referer"),
				"error", err,
			)
			h.writeError(w, r, http.StatusForbidden, "forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// checkSameOrigin returns a metric reason and an error when r does not come
// from this storefront.
func (h *Handlers) checkSameOrigin(r *http.Request) (string, error) {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	referer := strings.TrimSpace(r.Header.Get("Referer"))
	if origin == "" && referer == "" {
		return "missing_origin_and_referer", errMissingOrigin
	}

	for _, header := range []struct {
		name  string
		value string
	}{
		{name: "origin", value: origin},
		{name: "referer", value: referer},
	} {
		if header.value == "" {
			continue
		}
		host, err := hostFromURL(header.value)
		if err != nil {
			return "invalid_" + header.name, err
		}
		if !h.allowedHost(host, r) {
			return "invalid_" + header.name, fmt.Errorf("%s host %q is not allowed", header.name, host)
		}
	}
	return "", nil
}

func (h *Handlers) allowedHost(host string, r *http.Request) bool {
	if host == normalizeHost(r.Host) {
		return true
	}
	if h.config == nil || strings.TrimSpace(h.config.BaseURL) == "" {
		return false
	}
	baseHost, err := hostFromURL(h.config.BaseURL)
	return err == nil && host == baseHost
}

func requestMutatesState(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hostFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("missing hostname in %q", rawURL)
	}
	return host, nil
}

func normalizeHost(hostport string) string {
	hostport = strings.TrimSpace(hostport)
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return strings.ToLower(host)
	}
	return strings.ToLower(hostport)
}
