package catalog

// Package catalog provides price calculation functionality.

import (
	"github.com/shopspring/decimal"
)

type Pricer struct{}

func NewPricer() *Pricer {
	return &Pricer{}
}

// TotalPrice returns the option price for the pair plus the price of every
// selected ingredient. It returns zero when the product has no option for the
// pair, which callers treat as "not purchasable". Selected ids without an
// ingredient record add nothing.
func (p *Pricer) TotalPrice(pizzaType PizzaType, size PizzaSize, options []ProductOption, ingredients []Ingredient, selected IngredientSet) decimal.Decimal {
	option, ok := NewResolver(options).Option(pizzaType, size)
	if !ok {
		return decimal.Zero
	}

	total := option.Price
	if len(selected) == 0 {
		return total
	}

	prices := p.ingredientPrices(ingredients)
	for id := range selected {
		if price, exists := prices[id]; exists {
			total = total.Add(price)
		}
	}
	return total
}

// FormatPrice renders an amount with two decimal places.
func FormatPrice(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func (p *Pricer) ingredientPrices(ingredients []Ingredient) map[int64]decimal.Decimal {
	prices := make(map[int64]decimal.Decimal, len(ingredients))
	for _, ingredient := range ingredients {
		if _, exists := prices[ingredient.ID]; exists {
			continue
		}
		prices[ingredient.ID] = ingredient.Price
	}
	return prices
}
