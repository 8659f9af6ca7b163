package configurator

import (
	"fmt"

	"github.com/nextpizza/storefront/internal/catalog"
)

type ActionType string

const (
	ActionSelectSize       ActionType = "select_size"
	ActionSelectType       ActionType = "select_crust"
	ActionToggleIngredient ActionType = "toggle_ingredient"
)

// Action is one user interaction with the configurator.
type Action struct {
	Type  ActionType `json:"type" validate:"required,oneof=select_size select_crust toggle_ingredient"`
	Value int64      `json:"value" validate:"gt=0"`
}

// Apply performs exactly one mutation.
func (c *Configurator) Apply(action Action) error {
	switch action.Type {
	case ActionSelectSize:
		c.SelectSize(catalog.PizzaSize(action.Value))
	case ActionSelectType:
		c.SelectType(catalog.PizzaType(action.Value))
	case ActionToggleIngredient:
		c.ToggleIngredient(action.Value)
	default:
		return fmt.Errorf("unsupported configurator action: %q", action.Type)
	}
	return nil
}
