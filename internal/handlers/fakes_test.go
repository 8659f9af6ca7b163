package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nextpizza/storefront/internal/catalog"
	"github.com/nextpizza/storefront/internal/config"
	"github.com/nextpizza/storefront/internal/db"
	"github.com/nextpizza/storefront/internal/services"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

type fakeMenus struct {
	menus map[int64]*catalog.Menu
	err   error
}

func (f *fakeMenus) GetMenu(_ context.Context, productID int64) (*catalog.Menu, error) {
	if f.err != nil {
		return nil, f.err
	}
	menu, ok := f.menus[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return menu, nil
}

type fakeCheckout struct {
	addInput     services.AddToCartInput
	addItem      *db.CartItem
	addErr       error
	confirmInput services.ConfirmPaymentInput
	order        *db.Order
	confirmErr   error
}

func (f *fakeCheckout) AddToCart(_ context.Context, input services.AddToCartInput) (*db.CartItem, error) {
	f.addInput = input
	if f.addErr != nil {
		return nil, f.addErr
	}
	return f.addItem, nil
}

func (f *fakeCheckout) ConfirmPayment(_ context.Context, input services.ConfirmPaymentInput) (*db.Order, error) {
	f.confirmInput = input
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.order, nil
}

var errUnavailable = errors.New("unavailable")

func margheritaMenu() *catalog.Menu {
	return &catalog.Menu{
		Product: catalog.Product{ID: 1, Name: "Margherita"},
		Options: []catalog.ProductOption{
			{ProductID: 1, PizzaType: catalog.PizzaTypeThin, PizzaSize: catalog.PizzaSizeMedium, Price: decimal.RequireFromString("8.00"), ItemID: 101},
			{ProductID: 1, PizzaType: catalog.PizzaTypeThin, PizzaSize: catalog.PizzaSizeLarge, Price: decimal.RequireFromString("10.00"), ItemID: 102},
			{ProductID: 1, PizzaType: catalog.PizzaTypeTraditional, PizzaSize: catalog.PizzaSizeSmall, Price: decimal.RequireFromString("6.00"), ItemID: 103},
		},
		Ingredients: []catalog.Ingredient{
			{ID: 1, Name: "Mozzarella", Price: decimal.RequireFromString("1.50")},
			{ID: 2, Name: "Basil", Price: decimal.RequireFromString("0.35")},
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

func newTestHandlers(t *testing.T, menus *fakeMenus, checkout *fakeCheckout) *Handlers {
	t.Helper()

	h, err := New(Dependencies{
		Config:   &config.Config{BaseURL: "https://pizza.example.com"},
		DB:       fakePinger{},
		Menus:    menus,
		Checkout: checkout,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}
