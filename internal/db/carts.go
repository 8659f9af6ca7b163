package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CartStore struct {
	pool *pgxpool.Pool
}

func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

func (s *CartStore) AddItem(ctx context.Context, cartID, itemID int64, ingredientIDs []int64) (*CartItem, error) {
	if ingredientIDs == nil {
		ingredientIDs = []int64{}
	}

	query := `
		INSERT INTO cart_items (cart_id, item_id, ingredient_ids)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	item := &CartItem{
		CartID:        cartID,
		ItemID:        itemID,
		IngredientIDs: ingredientIDs,
	}
	if err := s.pool.QueryRow(ctx, query, cartID, itemID, ingredientIDs).Scan(&item.ID, &item.CreatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartStore) Clear(ctx context.Context, cartID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
