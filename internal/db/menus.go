package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nextpizza/storefront/internal/catalog"
)

type MenuStore struct {
	pool *pgxpool.Pool
}

func NewMenuStore(pool *pgxpool.Pool) *MenuStore {
	return &MenuStore{pool: pool}
}

// GetMenu loads a product with its options and ingredients. Options come back
// in id order so the resolver sees the oldest record of a repeated pair first.
func (s *MenuStore) GetMenu(ctx context.Context, productID int64) (*catalog.Menu, error) {
	menu := &catalog.Menu{}

	err := s.pool.QueryRow(ctx, `SELECT id, name, image_url FROM products WHERE id = $1`, productID).
		Scan(&menu.Product.ID, &menu.Product.Name, &menu.Product.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", catalog.ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	options, err := s.options(ctx, productID)
	if err != nil {
		return nil, err
	}
	menu.Options = options

	ingredients, err := s.ingredients(ctx, productID)
	if err != nil {
		return nil, err
	}
	menu.Ingredients = ingredients

	return menu, nil
}

func (s *MenuStore) options(ctx context.Context, productID int64) ([]catalog.ProductOption, error) {
	query := `
		SELECT product_id, pizza_type, pizza_size, price::text, item_id
		FROM product_options
		WHERE product_id = $1
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product options: %w", err)
	}
	defer rows.Close()

	options := []catalog.ProductOption{}
	for rows.Next() {
		var (
			option    catalog.ProductOption
			pizzaType pgtype.Int4
			pizzaSize pgtype.Int4
			price     string
		)
		if err := rows.Scan(&option.ProductID, &pizzaType, &pizzaSize, &price, &option.ItemID); err != nil {
			return nil, fmt.Errorf("failed to scan product option: %w", err)
		}
		// NULL crust type and size mark a product sold in a single option.
		option.PizzaType = catalog.PizzaType(pizzaType.Int32)
		option.PizzaSize = catalog.PizzaSize(pizzaSize.Int32)
		if option.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid option price %q: %w", price, err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product options: %w", err)
	}
	return options, nil
}

func (s *MenuStore) ingredients(ctx context.Context, productID int64) ([]catalog.Ingredient, error) {
	query := `
		SELECT i.id, i.name, i.price::text, i.image_url
		FROM ingredients i
		JOIN product_ingredients pi ON pi.ingredient_id = i.id
		WHERE pi.product_id = $1
		ORDER BY i.id
	`
	rows, err := s.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []catalog.Ingredient{}
	for rows.Next() {
		var (
			ingredient catalog.Ingredient
			price      string
		)
		if err := rows.Scan(&ingredient.ID, &ingredient.Name, &price, &ingredient.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		if ingredient.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid ingredient price %q: %w", price, err)
		}
		ingredients = append(ingredients, ingredient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}
	return ingredients, nil
}
