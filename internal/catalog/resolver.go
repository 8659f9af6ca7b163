package catalog

// Resolver maps size and crust type pairs of one product onto its purchasable options.
//
// Options are expected to hold at most one record per (crust type, size) pair.
// That is not enforced here: when the data repeats a pair, the first record
// in option order wins. Validator.DuplicateOptions reports such records.
type Resolver struct {
	options []ProductOption
}

func NewResolver(options []ProductOption) *Resolver {
	return &Resolver{options: options}
}

// AvailableSizes lists the whole size domain in display order, disabling the
// sizes that have no option for the given crust type.
func (r *Resolver) AvailableSizes(pizzaType PizzaType) []Variant {
	variants := make([]Variant, 0, len(pizzaSizes))
	for _, size := range pizzaSizes {
		_, ok := r.Option(pizzaType, size)
		variants = append(variants, Variant{
			Value:    int(size),
			Label:    size.Label(),
			Disabled: !ok,
		})
	}
	return variants
}

// Option returns the first option matching the pair.
func (r *Resolver) Option(pizzaType PizzaType, size PizzaSize) (ProductOption, bool) {
	for _, option := range r.options {
		if option.PizzaType == pizzaType && option.PizzaSize == size {
			return option, true
		}
	}
	return ProductOption{}, false
}

// ItemID resolves the purchasable item for the pair. ok is false when the
// product has no option for it.
func (r *Resolver) ItemID(pizzaType PizzaType, size PizzaSize) (itemID int64, ok bool) {
	option, ok := r.Option(pizzaType, size)
	if !ok {
		return 0, false
	}
	return option.ItemID, true
}

func (r *Resolver) IsAvailable(pizzaType PizzaType, size PizzaSize) bool {
	_, ok := r.Option(pizzaType, size)
	return ok
}

// FirstAvailableSize returns the first size in display order that has an
// option for the crust type.
func (r *Resolver) FirstAvailableSize(pizzaType PizzaType) (PizzaSize, bool) {
	for _, variant := range r.AvailableSizes(pizzaType) {
		if !variant.Disabled {
			return PizzaSize(variant.Value), true
		}
	}
	return 0, false
}
