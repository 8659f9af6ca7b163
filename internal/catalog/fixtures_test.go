package catalog

import "github.com/shopspring/decimal"

func thinOnlyOptions() []ProductOption {
	return []ProductOption{
		{ProductID: 1, PizzaType: PizzaTypeThin, PizzaSize: PizzaSizeMedium, Price: decimal.RequireFromString("8.00"), ItemID: 101},
		{ProductID: 1, PizzaType: PizzaTypeThin, PizzaSize: PizzaSizeLarge, Price: decimal.RequireFromString("10.00"), ItemID: 102},
	}
}

func sampleIngredients() []Ingredient {
	return []Ingredient{
		{ID: 1, Name: "Mozzarella", Price: decimal.RequireFromString("1.50")},
		{ID: 2, Name: "Jalapeno", Price: decimal.RequireFromString("0.35")},
		{ID: 3, Name: "Bacon", Price: decimal.RequireFromString("2.10")},
	}
}

func colaOptions() []ProductOption {
	return []ProductOption{
		{ProductID: 1, Price: decimal.RequireFromString("2.50"), ItemID: 501},
	}
}
