package catalog

// Package catalog provides menu validation.

import (
	"fmt"
	"strings"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the structural rules a menu must satisfy before it is
// served. Repeated (crust type, size) pairs are not an error here; see
// DuplicateOptions.
func (v *Validator) Validate(menu *Menu) error {
	if menu == nil {
		return fmt.Errorf("menu is required")
	}

	if strings.TrimSpace(menu.Product.Name) == "" {
		return fmt.Errorf("product name is required")
	}

	if option, ok := menu.SingleOption(); ok {
		if err := v.validatePurchasable(menu.Product.ID, &option); err != nil {
			return fmt.Errorf("option 0 validation failed: %w", err)
		}
	} else {
		for i, option := range menu.Options {
			if err := v.validateOption(menu.Product.ID, &option); err != nil {
				return fmt.Errorf("option %d validation failed: %w", i, err)
			}
		}
	}

	ids := make(map[int64]bool)
	for i, ingredient := range menu.Ingredients {
		if err := v.validateIngredient(&ingredient); err != nil {
			return fmt.Errorf("ingredient %d validation failed: %w", i, err)
		}

		if ids[ingredient.ID] {
			return fmt.Errorf("duplicate ingredient id: %d", ingredient.ID)
		}
		ids[ingredient.ID] = true
	}

	return nil
}

// DuplicateOptions returns every option whose (crust type, size) pair was
// already taken by an earlier option. The resolver ignores them.
func (v *Validator) DuplicateOptions(options []ProductOption) []ProductOption {
	type pair struct {
		pizzaType PizzaType
		size      PizzaSize
	}

	seen := make(map[pair]bool, len(options))
	var duplicates []ProductOption
	for _, option := range options {
		key := pair{pizzaType: option.PizzaType, size: option.PizzaSize}
		if seen[key] {
			duplicates = append(duplicates, option)
			continue
		}
		seen[key] = true
	}
	return duplicates
}

func (v *Validator) validateOption(productID int64, option *ProductOption) error {
	if !option.PizzaType.Valid() {
		return fmt.Errorf("unknown pizza type: %d", option.PizzaType)
	}

	if !option.PizzaSize.Valid() {
		return fmt.Errorf("unknown pizza size: %d", option.PizzaSize)
	}

	return v.validatePurchasable(productID, option)
}

func (v *Validator) validatePurchasable(productID int64, option *ProductOption) error {
	if option.ProductID != productID {
		return fmt.Errorf("option belongs to product %d, not %d", option.ProductID, productID)
	}

	// A zero total means "not purchasable", so base prices must be positive.
	if !option.Price.IsPositive() {
		return fmt.Errorf("option price must be positive")
	}

	if option.ItemID <= 0 {
		return fmt.Errorf("option item id must be positive")
	}

	return nil
}

func (v *Validator) validateIngredient(ingredient *Ingredient) error {
	if strings.TrimSpace(ingredient.Name) == "" {
		return fmt.Errorf("ingredient name is required")
	}

	if ingredient.Price.IsNegative() {
		return fmt.Errorf("ingredient price must be zero or positive")
	}

	return nil
}
