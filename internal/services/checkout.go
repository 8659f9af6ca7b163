package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/configurator"
	"github.com/nextpizza/storefront/internal/db"
	"github.com/nextpizza/storefront/internal/logging"
	"github.com/nextpizza/storefront/internal/observability"
	"github.com/nextpizza/storefront/internal/stripe"
)

var (
	// ErrPaymentNotConfirmed means the order cannot be shown as paid.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	// ErrSelectionRequired means a pizza was added to the cart without a selection.
	ErrSelectionRequired = errors.New("selection is required")
)

type menuProvider interface {
	GetMenu(ctx context.Context, productID int64) (*catalog.Menu, error)
}

type cartStore interface {
	AddItem(ctx context.Context, cartID, itemID int64, ingredientIDs []int64) (*db.CartItem, error)
	Clear(ctx context.Context, cartID int64) error
}

type orderStore interface {
	GetByID(ctx context.Context, orderID int64) (*db.Order, error)
	MarkPaid(ctx context.Context, orderID int64, paymentID string) error
}

type paymentIntentGetter interface {
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error)
}

type CheckoutService struct {
	menus       menuProvider
	carts       cartStore
	orders      orderStore
	payments    paymentIntentGetter
	emailSender OrderEmailSender
	logger      *slog.Logger
}

func NewCheckoutService(menus menuProvider, carts cartStore, orders orderStore, payments paymentIntentGetter, emailSender OrderEmailSender, logger *slog.Logger) *CheckoutService {
	if emailSender == nil {
		emailSender = noopOrderEmailSender{}
	}

	return &CheckoutService{
		menus:       menus,
		carts:       carts,
		orders:      orders,
		payments:    payments,
		emailSender: emailSender,
		logger:      logger,
	}
}

func (s *CheckoutService) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}

type AddToCartInput struct {
	CartID    int64
	ProductID int64
	Selection *configurator.Selection
}

// AddToCart resolves the selection against the product menu and stores the
// resulting item in the cart. It returns configurator.ErrNoPurchasableItem
// when the selection has no item. Products sold in a single option are added
// as is and ignore the selection.
func (s *CheckoutService) AddToCart(ctx context.Context, input AddToCartInput) (*db.CartItem, error) {
	logger := s.loggerFromContext(ctx).With("cart_id", input.CartID, "product_id", input.ProductID)
	meter := observability.MeterFromContext(ctx)

	menu, err := s.menus.GetMenu(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	var added *db.CartItem
	addToCart := func(ctx context.Context, itemID int64, ingredientIDs []int64) error {
		item, addErr := s.carts.AddItem(ctx, input.CartID, itemID, ingredientIDs)
		if addErr != nil {
			return fmt.Errorf("failed to add item to cart: %w", addErr)
		}
		added = item
		return nil
	}

	if option, ok := menu.SingleOption(); ok {
		if err := addToCart(ctx, option.ItemID, nil); err != nil {
			return nil, err
		}
	} else {
		if input.Selection == nil {
			observability.CountRejected(ctx, "cart.add.rejected", "missing_selection")
			return nil, ErrSelectionRequired
		}
		c := configurator.Restore(menu.Options, menu.Ingredients, *input.Selection)
		if _, err := c.Submit(ctx, addToCart); err != nil {
			if errors.Is(err, configurator.ErrNoPurchasableItem) {
				observability.CountRejected(ctx, "cart.add.rejected", "no_purchasable_item")
			}
			return nil, err
		}
	}

	meter.Count("cart.add.succeeded", 1)
	logger.Info("item added to cart", "item_id", added.ItemID, "ingredients", len(added.IngredientIDs))
	return added, nil
}

type ConfirmPaymentInput struct {
	CartID          int64
	OrderID         int64
	PaymentIntentID string
}

// ConfirmPayment marks an order paid once Stripe reports its payment intent as
// succeeded. Revisiting the page for an already confirmed payment returns the
// order again without side effects.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*db.Order, error) {
	logger := s.loggerFromContext(ctx).With("order_id", input.OrderID, "payment_intent_id", input.PaymentIntentID)
	meter := observability.MeterFromContext(ctx)

	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentNotConfirmed, err)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.CartID != input.CartID {
		return nil, fmt.Errorf("%w: order %d does not belong to cart %d", ErrPaymentNotConfirmed, order.ID, input.CartID)
	}

	if order.Status == db.StatusSucceeded {
		if order.PaymentID == input.PaymentIntentID {
			return order, nil
		}
		return nil, fmt.Errorf("%w: order %d was paid with another payment", ErrPaymentNotConfirmed, order.ID)
	}
	if order.Status == db.StatusCancelled {
		observability.CountRejected(ctx, "payment.confirm.rejected", "cancelled")
		return nil, fmt.Errorf("%w: order %d is cancelled", ErrPaymentNotConfirmed, order.ID)
	}

	intent, err := s.payments.GetPaymentIntent(ctx, input.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	if reason, err := verifyPaymentIntent(order, intent); err != nil {
		observability.CountRejected(ctx, "payment.confirm.rejected", reason)
		logger.Warn("payment intent does not confirm order", "error", err, "reason", reason)
		return nil, fmt.Errorf("%w: %v", ErrPaymentNotConfirmed, err)
	}

	if err := s.orders.MarkPaid(ctx, order.ID, intent.ID); err != nil {
		if errors.Is(err, db.ErrInvalidStatusTransition) {
			logger.Info("order is no longer pending", "error", err)
			return nil, fmt.Errorf("%w: %v", ErrPaymentNotConfirmed, err)
		}
		return nil, fmt.Errorf("failed to mark order as paid: %w", err)
	}
	meter.Count("payment.confirm.succeeded", 1)

	if err := s.carts.Clear(ctx, order.CartID); err != nil {
		logger.Error("failed to clear cart after payment", "error", err, "cart_id", order.CartID)
	}

	paid, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	if err := s.emailSender.SendOrderPaid(ctx, paid); err != nil {
		logger.Error("failed to send order paid email", "error", err)
	}

	logger.Info("order paid", "total", paid.TotalAmount.StringFixed(2))
	return paid, nil
}

// verifyPaymentIntent returns a metric reason and an error when intent does
// not pay for order.
func verifyPaymentIntent(order *db.Order, intent *stripe.PaymentIntent) (string, error) {
	if intent == nil {
		return "missing_intent", fmt.Errorf("payment intent missing")
	}
	if !intent.Succeeded() {
		return "status", fmt.Errorf("payment intent status %s", intent.Status)
	}
	if intent.Metadata["order_id"] != strconv.FormatInt(order.ID, 10) {
		return "order_mismatch", fmt.Errorf("payment intent belongs to another order")
	}
	if want := amountInCents(order.TotalAmount); intent.Amount != want {
		return "amount_mismatch", fmt.Errorf("payment amount %d does not match order total %d", intent.Amount, want)
	}
	return "", nil
}

func amountInCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
