// Package configurator holds the pizza configurator session: the selected
// size, crust type and ingredients plus everything derived from them.
package configurator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nextpizza/storefront/internal/catalog"
)

var ErrNoPurchasableItem = errors.New("no purchasable item for the selected size and crust type")

// Selection is the mutable state of one configurator session.
type Selection struct {
	Size        catalog.PizzaSize     `json:"size"`
	Type        catalog.PizzaType     `json:"type"`
	Ingredients catalog.IngredientSet `json:"ingredients"`
}

// DefaultSelection is the selection a configurator opens with.
func DefaultSelection() Selection {
	return Selection{
		Size:        catalog.PizzaSizeMedium,
		Type:        catalog.PizzaTypeTraditional,
		Ingredients: catalog.NewIngredientSet(),
	}
}

func (s Selection) Clone() Selection {
	clone := s
	clone.Ingredients = s.Ingredients.Clone()
	return clone
}

// AddToCartFunc receives the resolved item and the selected ingredient ids
// in ascending order when the user confirms the purchase.
type AddToCartFunc func(ctx context.Context, itemID int64, ingredientIDs []int64) error

type Configurator struct {
	options     []catalog.ProductOption
	ingredients []catalog.Ingredient
	resolver    *catalog.Resolver
	pricer      *catalog.Pricer
	selection   Selection
}

// New opens a configurator. The size is corrected once against the initial
// crust type, the same way a crust change corrects it.
func New(options []catalog.ProductOption, ingredients []catalog.Ingredient, initial Selection) *Configurator {
	c := Restore(options, ingredients, initial)
	c.selection = Reconcile(c.resolver, c.selection)
	return c
}

// Restore resumes a session from a previously returned selection without
// correcting it.
func Restore(options []catalog.ProductOption, ingredients []catalog.Ingredient, selection Selection) *Configurator {
	selection = selection.Clone()
	if selection.Ingredients == nil {
		selection.Ingredients = catalog.NewIngredientSet()
	}
	return &Configurator{
		options:     options,
		ingredients: ingredients,
		resolver:    catalog.NewResolver(options),
		pricer:      catalog.NewPricer(),
		selection:   selection,
	}
}

// Reconcile moves the selected size to the first available size for the
// selected crust type when the current one has no option. With no size
// available the selection is returned unchanged and stays unresolved.
func Reconcile(resolver *catalog.Resolver, selection Selection) Selection {
	if resolver.IsAvailable(selection.Type, selection.Size) {
		return selection
	}
	if size, ok := resolver.FirstAvailableSize(selection.Type); ok {
		selection.Size = size
	}
	return selection
}

func (c *Configurator) Selection() Selection {
	return c.selection.Clone()
}

func (c *Configurator) AvailableSizes() []catalog.Variant {
	return c.resolver.AvailableSizes(c.selection.Type)
}

// CurrentItemID is the purchasable item of the current selection, if any.
func (c *Configurator) CurrentItemID() (int64, bool) {
	return c.resolver.ItemID(c.selection.Type, c.selection.Size)
}

func (c *Configurator) TotalPrice() decimal.Decimal {
	return c.pricer.TotalPrice(c.selection.Type, c.selection.Size, c.options, c.ingredients, c.selection.Ingredients)
}

// Purchasable reports whether the purchase action should be enabled.
func (c *Configurator) Purchasable() bool {
	return c.TotalPrice().IsPositive()
}

func (c *Configurator) SelectSize(size catalog.PizzaSize) {
	c.selection.Size = size
}

// SelectType changes the crust type and corrects the size before returning,
// so every read after it sees a consistent pair.
func (c *Configurator) SelectType(pizzaType catalog.PizzaType) Selection {
	if c.selection.Type == pizzaType {
		return c.Selection()
	}
	c.selection.Type = pizzaType
	c.selection = Reconcile(c.resolver, c.selection)
	return c.Selection()
}

func (c *Configurator) ToggleIngredient(id int64) {
	c.selection.Ingredients.Toggle(id)
}

// Submit hands the current item to addToCart. It does nothing and returns
// ErrNoPurchasableItem when the selection resolves to no item.
func (c *Configurator) Submit(ctx context.Context, addToCart AddToCartFunc) (int64, error) {
	itemID, ok := c.CurrentItemID()
	if !ok || !c.Purchasable() {
		return 0, ErrNoPurchasableItem
	}
	if addToCart == nil {
		return 0, fmt.Errorf("add to cart callback is required")
	}
	if err := addToCart(ctx, itemID, c.selection.Ingredients.IDs()); err != nil {
		return 0, err
	}
	return itemID, nil
}

// Details describes the selected pizza, e.g. "Pizza: 25 sm, thin crust".
func (c *Configurator) Details() string {
	return fmt.Sprintf("Pizza: %d sm, %s crust", c.selection.Size, c.selection.Type.Label())
}

// IngredientsDetails lists the selected ingredient names in menu order.
func (c *Configurator) IngredientsDetails() string {
	names := make([]string, 0, len(c.selection.Ingredients))
	for _, ingredient := range c.ingredients {
		if c.selection.Ingredients.Has(ingredient.ID) {
			names = append(names, strings.ToLower(ingredient.Name))
		}
	}
	return strings.Join(names, ", ")
}
