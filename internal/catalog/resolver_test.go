package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestResolver_AvailableSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		pizzaType    PizzaType
		wantDisabled []bool
	}{
		{
			name:         "thin crust has medium and large",
			pizzaType:    PizzaTypeThin,
			wantDisabled: []bool{true, false, false},
		},
		{
			name:         "traditional crust has nothing",
			pizzaType:    PizzaTypeTraditional,
			wantDisabled: []bool{true, true, true},
		},
		{
			name:         "unknown crust still lists every size",
			pizzaType:    PizzaType(99),
			wantDisabled: []bool{true, true, true},
		},
	}

	resolver := NewResolver(thinOnlyOptions())

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolver.AvailableSizes(tt.pizzaType)
			sizes := PizzaSizes()
			if len(got) != len(sizes) {
				t.Fatalf("expected %d sizes, got %d", len(sizes), len(got))
			}
			for i, variant := range got {
				if variant.Value != int(sizes[i]) {
					t.Errorf("entry %d: expected size %d, got %d", i, sizes[i], variant.Value)
				}
				if variant.Disabled != tt.wantDisabled[i] {
					t.Errorf("entry %d: expected disabled=%v, got %v", i, tt.wantDisabled[i], variant.Disabled)
				}
			}
		})
	}
}

func TestResolver_AvailableSizesEmptyOptions(t *testing.T) {
	t.Parallel()

	for _, pizzaType := range PizzaTypes() {
		got := NewResolver(nil).AvailableSizes(pizzaType)
		if len(got) != len(PizzaSizes()) {
			t.Fatalf("expected full size domain, got %d entries", len(got))
		}
		for _, variant := range got {
			if !variant.Disabled {
				t.Errorf("expected size %d to be disabled", variant.Value)
			}
		}
	}
}

func TestResolver_ItemID(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(thinOnlyOptions())

	for _, pizzaType := range PizzaTypes() {
		for _, size := range PizzaSizes() {
			itemID, ok := resolver.ItemID(pizzaType, size)

			var want int64
			switch {
			case pizzaType == PizzaTypeThin && size == PizzaSizeMedium:
				want = 101
			case pizzaType == PizzaTypeThin && size == PizzaSizeLarge:
				want = 102
			}

			if want == 0 {
				if ok {
					t.Errorf("(%d, %d): expected no item, got %d", pizzaType, size, itemID)
				}
				continue
			}
			if !ok || itemID != want {
				t.Errorf("(%d, %d): expected item %d, got %d (ok=%v)", pizzaType, size, want, itemID, ok)
			}
		}
	}
}

func TestResolver_DuplicatePairFirstMatchWins(t *testing.T) {
	t.Parallel()

	options := append(thinOnlyOptions(), ProductOption{
		ProductID: 1,
		PizzaType: PizzaTypeThin,
		PizzaSize: PizzaSizeMedium,
		Price:     decimal.RequireFromString("9.00"),
		ItemID:    999,
	})

	itemID, ok := NewResolver(options).ItemID(PizzaTypeThin, PizzaSizeMedium)
	if !ok || itemID != 101 {
		t.Fatalf("expected first option 101 to win, got %d (ok=%v)", itemID, ok)
	}
}

func TestResolver_FirstAvailableSize(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(thinOnlyOptions())

	size, ok := resolver.FirstAvailableSize(PizzaTypeThin)
	if !ok || size != PizzaSizeMedium {
		t.Fatalf("expected medium, got %d (ok=%v)", size, ok)
	}

	if _, ok := resolver.FirstAvailableSize(PizzaTypeTraditional); ok {
		t.Fatal("expected no available size for traditional crust")
	}
}
