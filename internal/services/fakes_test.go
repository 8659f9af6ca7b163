package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nextpizza/storefront/internal/cache"
	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/db"
	"github.com/nextpizza/storefront/internal/stripe"
)

func pepperoniMenu() *catalog.Menu {
	return &catalog.Menu{
		Product: catalog.Product{ID: 1, Name: "Pepperoni"},
		Options: []catalog.ProductOption{
			{ProductID: 1, PizzaType: catalog.PizzaTypeThin, PizzaSize: catalog.PizzaSizeMedium, Price: decimal.RequireFromString("8.00"), ItemID: 101},
			{ProductID: 1, PizzaType: catalog.PizzaTypeThin, PizzaSize: catalog.PizzaSizeLarge, Price: decimal.RequireFromString("10.00"), ItemID: 102},
		},
		Ingredients: []catalog.Ingredient{
			{ID: 1, Name: "Mozzarella", Price: decimal.RequireFromString("1.50")},
		},
	}
}

func colaMenu() *catalog.Menu {
	return &catalog.Menu{
		Product: catalog.Product{ID: 5, Name: "Cola"},
		Options: []catalog.ProductOption{
			{ProductID: 5, Price: decimal.RequireFromString("2.50"), ItemID: 501},
		},
	}
}

type fakeMenuSource struct {
	mu    sync.Mutex
	menus map[int64]*catalog.Menu
	err   error
	calls int
}

func (f *fakeMenuSource) GetMenu(_ context.Context, productID int64) (*catalog.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	menu, ok := f.menus[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return menu, nil
}

type fakeCartStore struct {
	added    []db.CartItem
	cleared  []int64
	addErr   error
	clearErr error
}

func (f *fakeCartStore) AddItem(_ context.Context, cartID, itemID int64, ingredientIDs []int64) (*db.CartItem, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	item := db.CartItem{
		ID:            int64(len(f.added) + 1),
		CartID:        cartID,
		ItemID:        itemID,
		IngredientIDs: ingredientIDs,
		CreatedAt:     time.Now(),
	}
	f.added = append(f.added, item)
	return &item, nil
}

func (f *fakeCartStore) Clear(_ context.Context, cartID int64) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, cartID)
	return nil
}

type fakeOrderStore struct {
	orders   map[int64]*db.Order
	markErr  error
	markPaid int
}

func (f *fakeOrderStore) GetByID(_ context.Context, orderID int64) (*db.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) MarkPaid(_ context.Context, orderID int64, paymentID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	order, ok := f.orders[orderID]
	if !ok || order.Status != db.StatusPending {
		return db.ErrInvalidStatusTransition
	}
	order.Status = db.StatusSucceeded
	order.PaymentID = paymentID
	order.PaidAt = time.Now()
	f.markPaid++
	return nil
}

type fakePayments struct {
	intents map[string]*stripe.PaymentIntent
	calls   int
}

func (f *fakePayments) GetPaymentIntent(_ context.Context, paymentIntentID string) (*stripe.PaymentIntent, error) {
	f.calls++
	intent, ok := f.intents[paymentIntentID]
	if !ok {
		return nil, errors.New("no such payment intent")
	}
	return intent, nil
}

type fakeEmailSender struct {
	sent []*db.Order
	err  error
}

func (f *fakeEmailSender) SendOrderPaid(_ context.Context, order *db.Order) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, order)
	return nil
}

func newMemoryCache() cache.Provider {
	provider, err := cache.NewMemoryProvider(0)
	if err != nil {
		panic(err)
	}
	return provider
}
