package configurator

import "github.com/nextpizza/storefront/internal/catalog"

// View is the read model returned to the storefront after every interaction.
// Configurable is false for products sold in a single option, which only
// carry the item and its price.
type View struct {
	Product            catalog.Product   `json:"product"`
	Configurable       bool              `json:"configurable"`
	Selection          Selection         `json:"selection"`
	Sizes              []catalog.Variant `json:"sizes"`
	Crusts             []catalog.Variant `json:"crusts"`
	Ingredients        []IngredientView  `json:"ingredients"`
	ItemID             *int64            `json:"itemId"`
	TotalPrice         string            `json:"totalPrice"`
	Purchasable        bool              `json:"purchasable"`
	Details            string            `json:"details"`
	IngredientsDetails string            `json:"ingredientsDetails"`
}

type IngredientView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
	Active   bool   `json:"active"`
}

func (c *Configurator) View(product catalog.Product) View {
	view := View{
		Product:            product,
		Configurable:       true,
		Selection:          c.Selection(),
		Sizes:              c.AvailableSizes(),
		Crusts:             catalog.CrustVariants(),
		Ingredients:        make([]IngredientView, 0, len(c.ingredients)),
		TotalPrice:         catalog.FormatPrice(c.TotalPrice()),
		Purchasable:        c.Purchasable(),
		Details:            c.Details(),
		IngredientsDetails: c.IngredientsDetails(),
	}
	if itemID, ok := c.CurrentItemID(); ok {
		view.ItemID = &itemID
	}
	for _, ingredient := range c.ingredients {
		view.Ingredients = append(view.Ingredients, IngredientView{
			ID:       ingredient.ID,
			Name:     ingredient.Name,
			Price:    catalog.FormatPrice(ingredient.Price),
			ImageURL: ingredient.ImageURL,
			Active:   c.selection.Ingredients.Has(ingredient.ID),
		})
	}
	return view
}

// SingleOptionView describes a product that is added to the cart as is.
func SingleOptionView(product catalog.Product, option catalog.ProductOption) View {
	itemID := option.ItemID
	return View{
		Product:     product,
		Selection:   Selection{Ingredients: catalog.NewIngredientSet()},
		Sizes:       []catalog.Variant{},
		Crusts:      []catalog.Variant{},
		Ingredients: []IngredientView{},
		ItemID:      &itemID,
		TotalPrice:  catalog.FormatPrice(option.Price),
		Purchasable: option.Price.IsPositive(),
	}
}
