package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"

	"github.com/nextpizza/storefront/internal/cache"
	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/config"
	"github.com/nextpizza/storefront/internal/db"
	"github.com/nextpizza/storefront/internal/email"
	"github.com/nextpizza/storefront/internal/handlers"
	"github.com/nextpizza/storefront/internal/logging"
	"github.com/nextpizza/storefront/internal/observability"
	"github.com/nextpizza/storefront/internal/services"
	"github.com/nextpizza/storefront/internal/stripe"
)

const outgoingRequestTimeout = 10 * time.Second

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *pgxpool.Pool
	CacheProvider cache.Provider
	Handlers      *handlers.Handlers
	sentryEnabled bool
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
		}); err != nil {
			return nil, fmt.Errorf("failed to initialize sentry: %w", err)
		}
		sentryEnabled = true
	}

	logger := newLogger(cfg, sentryEnabled)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	database, err := db.Connect(startupCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider:              cfg.CacheProvider,
		MemorySize:            cfg.CacheMemorySize,
		RedisConnectionString: cfg.RedisConnectionString,
		KeyPrefix:             cfg.CacheKeyPrefix,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	menuSource, err := newMenuSource(cfg, database)
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, err
	}
	menuService := services.NewMenuService(
		menuSource,
		cacheProvider,
		cfg.MenuCacheTTL,
		catalog.NewValidator(),
		logger.With("component", "menu_service"),
	)

	httpClient := observability.NewHTTPClient(outgoingRequestTimeout)
	payments := stripe.NewPaymentClient(cfg.StripeSecretKey, httpClient)

	emailSender, err := newOrderEmailSender(startupCtx, cfg, httpClient, logger)
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, err
	}

	checkoutService := services.NewCheckoutService(
		menuService,
		db.NewCartStore(database),
		db.NewOrderStore(database),
		payments,
		emailSender,
		logger.With("component", "checkout_service"),
	)

	h, err := handlers.New(handlers.Dependencies{
		Config:   cfg,
		DB:       database,
		Menus:    menuService,
		Checkout: checkoutService,
		Logger:   logger,
	})
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		DB:            database,
		CacheProvider: cacheProvider,
		Handlers:      h,
		sentryEnabled: sentryEnabled,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	if a.DB != nil {
		a.DB.Close()
	}
	if a.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

func newMenuSource(cfg *config.Config, database *pgxpool.Pool) (services.MenuSource, error) {
	if cfg.MenuSource != "file" {
		return db.NewMenuStore(database), nil
	}

	file, err := catalog.NewParser().ParseFile(cfg.MenuFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu file: %w", err)
	}
	return services.NewFileMenuSource(file), nil
}

func newOrderEmailSender(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (services.OrderEmailSender, error) {
	if cfg.ResendAPIKey == "" {
		logger.Warn("RESEND_API_KEY not set, order emails are disabled")
		return nil, nil
	}

	provider, err := email.NewProvider(email.Config{
		Provider:   "resend",
		APIKey:     cfg.ResendAPIKey,
		From:       cfg.EmailFrom,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email provider: %w", err)
	}
	verifyEmailProvider(ctx, provider, logger)
	return services.NewOrderEmailSender(provider, cfg.BaseURL), nil
}

// verifyEmailProvider checks the API key once at startup. A rejected key only
// logs a warning; payments keep working without order emails.
func verifyEmailProvider(ctx context.Context, provider email.Provider, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, outgoingRequestTimeout)
	defer cancel()

	if err := provider.ValidateAPIKey(ctx); err != nil {
		logger.Warn("email provider rejected API key, order emails will fail", "error", err)
		return
	}
	logger.Debug("email provider API key verified")
}

func newLogger(cfg *config.Config, sentryEnabled bool) *slog.Logger {
	var console slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "json":
		console = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	default:
		console = tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel})
	}

	if !sentryEnabled {
		return slog.New(console)
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
	}.NewSentryHandler(context.Background())
	return slog.New(logging.MultiHandler(console, sentryHandler))
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}
