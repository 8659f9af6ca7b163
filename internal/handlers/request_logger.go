package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nextpizza/storefront/internal/logging"
)

type requestIDContextKey struct{}

// routeIDs are the mux variables naming the resource a request is about.
var routeIDs = []struct {
	variable string
	name     string
}{
	{variable: "productID", name: "product"},
	{variable: "orderID", name: "order"},
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func (w *responseRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// RequestLogger assigns the request id, injects a request-scoped logger into
// the context and logs one completion line per request. The product or order
// the route points at is added to that line.
func (h *Handlers) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := routeLabel(r)

		requestID := requestIDFromRequest(r)
		w.Header().Set("X-Request-ID", requestID)

		logger := h.logger.With(
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_ip", clientIP(r),
		)
		if route != "" {
			logger = logger.With("route", route)
		}
		if userAgent := strings.TrimSpace(r.UserAgent()); userAgent != "" {
			logger = logger.With("user_agent", userAgent)
		}

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = context.WithValue(ctx, requestIDContextKey{}, requestID)

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(ctx))

		status := rec.statusCode()
		duration := time.Since(start)
		recordRequestMetrics(ctx, r.Method, route, status, duration)

		attrs := []any{
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"bytes", rec.bytes,
		}
		for _, id := range routeIDs {
			if value := strings.TrimSpace(mux.Vars(r)[id.variable]); value != "" {
				attrs = append(attrs, id.name+"_id", value)
			}
		}
		logger.Log(ctx, completionLevel(route, status), "request completed", attrs...)
	})
}

// completionLevel logs health checks at debug and server errors at warn.
func completionLevel(route string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelWarn
	case route == "health":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func recordRequestMetrics(ctx context.Context, method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unknown"
	}
	attrs := []attribute.Builder{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	}

	meter := sentry.NewMeter(ctx).WithCtx(ctx)
	meter.Count("http.server.requests", 1, sentry.WithAttributes(attrs...))
	meter.Distribution(
		"http.server.duration",
		float64(duration.Milliseconds()),
		sentry.WithUnit(sentry.UnitMillisecond),
		sentry.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", route),
			attribute.String("http.status_class", fmt.Sprintf("%dxx", status/100)),
		),
	)
	if status >= http.StatusInternalServerError {
		meter.Count("http.server.errors", 1, sentry.WithAttributes(attrs...))
	}
}

// currentRequestID returns the id RequestLogger assigned, or a fresh one when the
// request did not pass through it.
func currentRequestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDContextKey{}).(string); ok && id != "" {
		return id
	}
	return requestIDFromRequest(r)
}

func requestIDFromRequest(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Request-ID")); id != "" {
		return id
	}
	return uuid.NewString()
}

func clientIP(r *http.Request) string {
	if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-Ip")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func routeLabel(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return ""
	}
	if name := route.GetName(); name != "" {
		return name
	}
	if template, err := route.GetPathTemplate(); err == nil {
		return template
	}
	return ""
}
