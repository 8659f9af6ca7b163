package catalog

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

type Ingredient struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
}

// ProductOption is one purchasable size and crust type combination of a product.
// ItemID identifies the purchasable item that goes into the cart.
type ProductOption struct {
	ProductID int64           `json:"productId"`
	PizzaType PizzaType       `json:"pizzaType"`
	PizzaSize PizzaSize       `json:"pizzaSize"`
	Price     decimal.Decimal `json:"price"`
	ItemID    int64           `json:"itemId"`
}

// Menu is everything the configurator needs for one product.
type Menu struct {
	Product     Product         `json:"product"`
	Options     []ProductOption `json:"options"`
	Ingredients []Ingredient    `json:"ingredients"`
}

// SingleOption returns the only option of a product that is not a pizza,
// such as a drink. Such a product has exactly one option and no crust type
// or size.
func (m *Menu) SingleOption() (ProductOption, bool) {
	if m == nil || len(m.Options) != 1 {
		return ProductOption{}, false
	}
	option := m.Options[0]
	if option.PizzaType != 0 || option.PizzaSize != 0 {
		return ProductOption{}, false
	}
	return option, true
}

// IngredientSet holds selected ingredient ids. Only membership matters.
type IngredientSet map[int64]struct{}

func NewIngredientSet(ids ...int64) IngredientSet {
	set := make(IngredientSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IngredientSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Toggle adds id when absent and removes it when present.
func (s IngredientSet) Toggle(id int64) {
	if _, ok := s[id]; ok {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// IDs returns the members in ascending order.
func (s IngredientSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s IngredientSet) Clone() IngredientSet {
	clone := make(IngredientSet, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}

func (s IngredientSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *IngredientSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIngredientSet(ids...)
	return nil
}
