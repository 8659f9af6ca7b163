package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nextpizza/storefront/internal/cache"
	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/logging"
)

// MenuSource loads the menu of one product from its origin.
type MenuSource interface {
	GetMenu(ctx context.Context, productID int64) (*catalog.Menu, error)
}

type menuValidator interface {
	Validate(menu *catalog.Menu) error
	DuplicateOptions(options []catalog.ProductOption) []catalog.ProductOption
}

type MenuService struct {
	source    MenuSource
	cache     cache.Provider
	cacheTTL  time.Duration
	validator menuValidator
	logger    *slog.Logger
}

func NewMenuService(source MenuSource, cacheProvider cache.Provider, cacheTTL time.Duration, validator menuValidator, logger *slog.Logger) *MenuService {
	if validator == nil {
		validator = catalog.NewValidator()
	}
	return &MenuService{
		source:    source,
		cache:     cacheProvider,
		cacheTTL:  cacheTTL,
		validator: validator,
		logger:    logger,
	}
}

func (s *MenuService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

// GetMenu returns a validated menu, reading through the cache.
func (s *MenuService) GetMenu(ctx context.Context, productID int64) (*catalog.Menu, error) {
	logger := s.loggerFromContext(ctx).With("product_id", productID)

	if menu, ok := s.cachedMenu(ctx, logger, productID); ok {
		return menu, nil
	}

	menu, err := s.source.GetMenu(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	if err := s.validator.Validate(menu); err != nil {
		logger.Error("menu failed validation", "error", err)
		return nil, fmt.Errorf("invalid menu for product %d: %w", productID, err)
	}

	// Repeated pairs are served as-is; the resolver takes the first one.
	for _, duplicate := range s.validator.DuplicateOptions(menu.Options) {
		logger.Warn("duplicate product option ignored",
			"pizza_type", duplicate.PizzaType,
			"pizza_size", duplicate.PizzaSize,
			"item_id", duplicate.ItemID,
		)
	}

	s.storeMenu(ctx, logger, productID, menu)
	return menu, nil
}

func (s *MenuService) cachedMenu(ctx context.Context, logger *slog.Logger, productID int64) (*catalog.Menu, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, cache.MenuKey(productID))
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			logger.Warn("failed to read cached menu", "error", err)
		}
		return nil, false
	}

	var menu catalog.Menu
	if err := json.Unmarshal([]byte(payload), &menu); err != nil {
		logger.Warn("discarding unreadable cached menu", "error", err)
		if delErr := s.cache.Delete(ctx, cache.MenuKey(productID)); delErr != nil {
			logger.Warn("failed to delete cached menu", "error", delErr)
		}
		return nil, false
	}
	return &menu, true
}

func (s *MenuService) storeMenu(ctx context.Context, logger *slog.Logger, productID int64, menu *catalog.Menu) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(menu)
	if err != nil {
		logger.Warn("failed to encode menu for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, cache.MenuKey(productID), string(payload), s.cacheTTL); err != nil {
		logger.Warn("failed to cache menu", "error", err)
	}
}

// FileMenuSource serves menus from a parsed YAML menu file.
type FileMenuSource struct {
	file *catalog.MenuFile
}

func NewFileMenuSource(file *catalog.MenuFile) *FileMenuSource {
	return &FileMenuSource{file: file}
}

func (s *FileMenuSource) GetMenu(_ context.Context, productID int64) (*catalog.Menu, error) {
	if s.file == nil {
		return nil, fmt.Errorf("%w: %d", catalog.ErrProductNotFound, productID)
	}
	return s.file.Menu(productID)
}
