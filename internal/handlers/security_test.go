package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nextpizza/storefront/internal/config"
)

func TestRequireSameOrigin_AllowsMatchingOrigin(t *testing.T) {
	t.Parallel()

	h := &Handlers{
		config: &config.Config{BaseURL: "https://example.com"},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "https://example.com/api/products/1/cart", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()

	h.RequireSameOrigin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestRequireSameOrigin_RejectsMissingOriginAndReferer(t *testing.T) {
	t.Parallel()

	h := &Handlers{
		config: &config.Config{BaseURL: "https://example.com"},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "https://example.com/api/products/1/cart", nil)
	rec := httptest.NewRecorder()

	h.RequireSameOrigin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireSameOrigin_RejectsCrossOrigin(t *testing.T) {
	t.Parallel()

	h := &Handlers{
		config: &config.Config{BaseURL: "https://example.com"},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "https://example.com/api/products/1/cart", nil)
	req.Header.Set("Origin", "https://attacker.example")
	rec := httptest.NewRecorder()

	h.RequireSameOrigin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireSameOrigin_SkipsReadOnlyMethods(t *testing.T) {
	t.Parallel()

	h := &Handlers{
		config: &config.Config{BaseURL: "https://example.com"},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "https://example.com/api/products/1/configurator", nil)
	rec := httptest.NewRecorder()

	h.RequireSameOrigin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	h := &Handlers{}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	h.SecurityHeaders(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Fatalf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestCheckSameOrigin(t *testing.T) {
	t.Parallel()

	h := &Handlers{
		config: &config.Config{BaseURL: "https://pizza.example.com"},
	}

	tests := []struct {
		name       string
		origin     string
		referer    string
		wantReason string
	}{
		{name: "request host origin", origin: "http://internal:8080"},
		{name: "base url origin", origin: "https://PIZZA.example.com"},
		{name: "base url referer", referer: "https://pizza.example.com/products/1"},
		{name: "missing both", wantReason: "missing_origin_and_referer"},
		{name: "opaque origin", origin: "null", wantReason: "invalid_origin"},
		{name: "foreign referer", origin: "https://pizza.example.com", referer: "https://attacker.example/", wantReason: "invalid_referer"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "http://internal:8080/api/products/1/cart", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}

			reason, err := h.checkSameOrigin(req)
			if reason != tt.wantReason {
				t.Fatalf("unexpected reason: got=%q want=%q", reason, tt.wantReason)
			}
			if (err != nil) != (tt.wantReason != "") {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
