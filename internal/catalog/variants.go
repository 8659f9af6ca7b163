// Package catalog provides the pizza menu model, variant resolution and pricing.
package catalog

import "strconv"

// PizzaSize is the diameter tier of a pizza in centimetres.
type PizzaSize int

const (
	PizzaSizeSmall  PizzaSize = 20
	PizzaSizeMedium PizzaSize = 25
	PizzaSizeLarge  PizzaSize = 30
)

// PizzaType is the crust type code of a pizza.
type PizzaType int

const (
	PizzaTypeTraditional PizzaType = 1
	PizzaTypeThin        PizzaType = 2
)

var pizzaSizes = []PizzaSize{PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge}

var pizzaTypes = []PizzaType{PizzaTypeTraditional, PizzaTypeThin}

// PizzaSizes returns the size domain in display order.
func PizzaSizes() []PizzaSize {
	sizes := make([]PizzaSize, len(pizzaSizes))
	copy(sizes, pizzaSizes)
	return sizes
}

// PizzaTypes returns the crust type domain in display order.
func PizzaTypes() []PizzaType {
	types := make([]PizzaType, len(pizzaTypes))
	copy(types, pizzaTypes)
	return types
}

func (s PizzaSize) Valid() bool {
	for _, size := range pizzaSizes {
		if size == s {
			return true
		}
	}
	return false
}

func (s PizzaSize) Label() string {
	switch s {
	case PizzaSizeSmall:
		return "Small"
	case PizzaSizeMedium:
		return "Medium"
	case PizzaSizeLarge:
		return "Large"
	default:
		return strconv.Itoa(int(s)) + " sm"
	}
}

func (t PizzaType) Valid() bool {
	for _, pizzaType := range pizzaTypes {
		if pizzaType == t {
			return true
		}
	}
	return false
}

func (t PizzaType) Label() string {
	switch t {
	case PizzaTypeTraditional:
		return "traditional"
	case PizzaTypeThin:
		return "thin"
	default:
		return "unknown"
	}
}

// Variant is one selectable entry of a size or crust type picker.
type Variant struct {
	Value    int    `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// CrustVariants lists every crust type. Crust types are always selectable.
func CrustVariants() []Variant {
	variants := make([]Variant, 0, len(pizzaTypes))
	for _, pizzaType := range pizzaTypes {
		variants = append(variants, Variant{
			Value: int(pizzaType),
			Label: pizzaType.Label(),
		})
	}
	return variants
}
