package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/config"
	"github.com/nextpizza/storefront/internal/db"
	"github.com/nextpizza/storefront/internal/logging"
	"github.com/nextpizza/storefront/internal/services"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

type pinger interface {
	Ping(ctx context.Context) error
}

type menuProvider interface {
	GetMenu(ctx context.Context, productID int64) (*catalog.Menu, error)
}

type checkoutService interface {
	AddToCart(ctx context.Context, input services.AddToCartInput) (*db.CartItem, error)
	ConfirmPayment(ctx context.Context, input services.ConfirmPaymentInput) (*db.Order, error)
}

// Handlers provides the HTTP handlers of the pizza storefront API.
type Handlers struct {
	config    *config.Config
	db        pinger
	menus     menuProvider
	checkout  checkoutService
	validator *validator.Validate
	logger    *slog.Logger
}

type Dependencies struct {
	Config   *config.Config
	DB       pinger
	Menus    menuProvider
	Checkout checkoutService
	Logger   *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("handlers dependencies: db is required")
	}
	if deps.Menus == nil {
		return nil, fmt.Errorf("handlers dependencies: menus is required")
	}
	if deps.Checkout == nil {
		return nil, fmt.Errorf("handlers dependencies: checkout is required")
	}

	return &Handlers{
		config:    deps.Config,
		db:        deps.DB,
		menus:     deps.Menus,
		checkout:  deps.Checkout,
		validator: validator.New(),
		logger:    logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	if err := h.db.Ping(ctx); err != nil {
		logger.Error("database health check failed", "error", err)
		http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// NotFound answers unknown routes with a JSON error.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, "not found")
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.loggerFromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, errorResponse{Error: message})
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validator.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
