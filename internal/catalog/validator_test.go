package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validMenu() *Menu {
	return &Menu{
		Product:     Product{ID: 1, Name: "Pepperoni"},
		Options:     thinOnlyOptions(),
		Ingredients: sampleIngredients(),
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(menu *Menu)
		wantErr bool
	}{
		{
			name:    "valid menu",
			mutate:  func(*Menu) {},
			wantErr: false,
		},
		{
			name:    "menu without options or ingredients",
			mutate:  func(menu *Menu) { menu.Options = nil; menu.Ingredients = nil },
			wantErr: false,
		},
		{
			name:    "duplicate pair is not a validation error",
			mutate:  func(menu *Menu) { menu.Options = append(menu.Options, menu.Options[0]) },
			wantErr: false,
		},
		{
			name:    "product name required",
			mutate:  func(menu *Menu) { menu.Product.Name = " " },
			wantErr: true,
		},
		{
			name:    "zero option price",
			mutate:  func(menu *Menu) { menu.Options[0].Price = decimal.Zero },
			wantErr: true,
		},
		{
			name:    "unknown pizza size",
			mutate:  func(menu *Menu) { menu.Options[0].PizzaSize = 35 },
			wantErr: true,
		},
		{
			name:    "unknown pizza type",
			mutate:  func(menu *Menu) { menu.Options[0].PizzaType = 3 },
			wantErr: true,
		},
		{
			name:    "option of another product",
			mutate:  func(menu *Menu) { menu.Options[1].ProductID = 2 },
			wantErr: true,
		},
		{
			name:    "missing item id",
			mutate:  func(menu *Menu) { menu.Options[1].ItemID = 0 },
			wantErr: true,
		},
		{
			name:    "negative ingredient price",
			mutate:  func(menu *Menu) { menu.Ingredients[0].Price = decimal.RequireFromString("-1") },
			wantErr: true,
		},
		{
			name:    "free ingredient is allowed",
			mutate:  func(menu *Menu) { menu.Ingredients[0].Price = decimal.Zero },
			wantErr: false,
		},
		{
			name:    "single option without crust type or size",
			mutate:  func(menu *Menu) { menu.Options = colaOptions(); menu.Ingredients = nil },
			wantErr: false,
		},
		{
			name: "single option without crust type or size needs a price",
			mutate: func(menu *Menu) {
				menu.Options = colaOptions()
				menu.Options[0].Price = decimal.Zero
			},
			wantErr: true,
		},
		{
			name: "single option without crust type or size needs an item",
			mutate: func(menu *Menu) {
				menu.Options = colaOptions()
				menu.Options[0].ItemID = 0
			},
			wantErr: true,
		},
		{
			name:    "unset crust type among pizza options",
			mutate:  func(menu *Menu) { menu.Options = append(menu.Options, colaOptions()...) },
			wantErr: true,
		},
		{
			name:    "duplicate ingredient id",
			mutate:  func(menu *Menu) { menu.Ingredients[1].ID = menu.Ingredients[0].ID },
			wantErr: true,
		},
	}

	validator := NewValidator()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			menu := validMenu()
			tt.mutate(menu)

			err := validator.Validate(menu)
			if tt.wantErr && err == nil {
				t.Fatal("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidator_DuplicateOptions(t *testing.T) {
	t.Parallel()

	options := append(thinOnlyOptions(), ProductOption{
		ProductID: 1,
		PizzaType: PizzaTypeThin,
		PizzaSize: PizzaSizeLarge,
		Price:     decimal.RequireFromString("12.00"),
		ItemID:    103,
	})

	duplicates := NewValidator().DuplicateOptions(options)
	if len(duplicates) != 1 || duplicates[0].ItemID != 103 {
		t.Fatalf("expected item 103 to be reported, got %+v", duplicates)
	}

	if got := NewValidator().DuplicateOptions(thinOnlyOptions()); len(got) != 0 {
		t.Fatalf("expected no duplicates, got %+v", got)
	}
}

func TestMenu_SingleOption(t *testing.T) {
	t.Parallel()

	cola := &Menu{Product: Product{ID: 1, Name: "Cola"}, Options: colaOptions()}
	option, ok := cola.SingleOption()
	if !ok || option.ItemID != 501 {
		t.Fatalf("expected item 501, got %+v ok=%v", option, ok)
	}

	if _, ok := validMenu().SingleOption(); ok {
		t.Fatal("expected pizza menu to have no single option")
	}

	thinMedium := &Menu{Product: Product{ID: 1, Name: "Pepperoni"}, Options: thinOnlyOptions()[:1]}
	if _, ok := thinMedium.SingleOption(); ok {
		t.Fatal("expected a single pizza option to stay a pizza")
	}

	var empty *Menu
	if _, ok := empty.SingleOption(); ok {
		t.Fatal("expected nil menu to have no single option")
	}
}
