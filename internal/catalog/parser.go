package catalog

// Package catalog provides menu file parsing functionality.

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MenuFile is a static menu loaded from YAML. Products reference shared
// ingredients by id.
type MenuFile struct {
	Products    []ProductEntry    `yaml:"products"`
	Ingredients []IngredientEntry `yaml:"ingredients"`
}

type ProductEntry struct {
	ID          int64         `yaml:"id"`
	Name        string        `yaml:"name"`
	ImageURL    string        `yaml:"image_url"`
	Ingredients []int64       `yaml:"ingredients"`
	Options     []OptionEntry `yaml:"options"`
}

type OptionEntry struct {
	PizzaType int    `yaml:"pizza_type"`
	PizzaSize int    `yaml:"pizza_size"`
	Price     string `yaml:"price"`
	ItemID    int64  `yaml:"item_id"`
}

type IngredientEntry struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	ImageURL string `yaml:"image_url"`
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(content []byte) (*MenuFile, error) {
	var file MenuFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &file, nil
}

func (p *Parser) ParseFromString(content string) (*MenuFile, error) {
	return p.Parse([]byte(content))
}

func (p *Parser) ParseFile(path string) (*MenuFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return p.Parse(content)
}

// Menu builds the menu of one product. It returns ErrProductNotFound when the
// file has no such product.
func (f *MenuFile) Menu(productID int64) (*Menu, error) {
	var entry *ProductEntry
	for i := range f.Products {
		if f.Products[i].ID == productID {
			entry = &f.Products[i]
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}

	menu := &Menu{
		Product: Product{
			ID:       entry.ID,
			Name:     entry.Name,
			ImageURL: entry.ImageURL,
		},
		Options:     make([]ProductOption, 0, len(entry.Options)),
		Ingredients: make([]Ingredient, 0, len(entry.Ingredients)),
	}

	for i, option := range entry.Options {
		price, err := parsePrice(option.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d option %d: %w", entry.ID, i, err)
		}
		menu.Options = append(menu.Options, ProductOption{
			ProductID: entry.ID,
			PizzaType: PizzaType(option.PizzaType),
			PizzaSize: PizzaSize(option.PizzaSize),
			Price:     price,
			ItemID:    option.ItemID,
		})
	}

	ingredients := make(map[int64]IngredientEntry, len(f.Ingredients))
	for _, ingredient := range f.Ingredients {
		ingredients[ingredient.ID] = ingredient
	}
	for _, id := range entry.Ingredients {
		ingredient, ok := ingredients[id]
		if !ok {
			return nil, fmt.Errorf("product %d references unknown ingredient %d", entry.ID, id)
		}
		price, err := parsePrice(ingredient.Price)
		if err != nil {
			return nil, fmt.Errorf("ingredient %d: %w", id, err)
		}
		menu.Ingredients = append(menu.Ingredients, Ingredient{
			ID:       ingredient.ID,
			Name:     ingredient.Name,
			Price:    price,
			ImageURL: ingredient.ImageURL,
		})
	}

	return menu, nil
}

func parsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", value, err)
	}
	return price, nil
}
