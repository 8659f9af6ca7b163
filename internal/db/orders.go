package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderStore struct {
	pool *pgxpool.Pool
}

var ErrInvalidStatusTransition = errors.New("invalid order status transition")

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

func (s *OrderStore) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	query := `
		SELECT id, cart_id, email, full_name, total_amount::text, status, payment_id, created_at, paid_at
		FROM orders
		WHERE id = $1
	`
	var row orderRow
	err := s.pool.QueryRow(ctx, query, orderID).Scan(
		&row.ID,
		&row.CartID,
		&row.Email,
		&row.FullName,
		&row.TotalAmount,
		&row.Status,
		&row.PaymentID,
		&row.CreatedAt,
		&row.PaidAt,
	)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("order %d", orderID))
	}
	return s.rowToOrder(row)
}

// MarkPaid moves a pending order to succeeded and records the payment.
func (s *OrderStore) MarkPaid(ctx context.Context, orderID int64, paymentID string) error {
	query := `
		UPDATE orders
		SET status = $1, payment_id = $2, paid_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
	`
	cmdTag, err := s.pool.Exec(ctx, query, StatusSucceeded, paymentID, orderID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expected PENDING", ErrInvalidStatusTransition)
	}
	return nil
}

type orderRow struct {
	ID          int64
	CartID      int64
	Email       string
	FullName    string
	TotalAmount string
	Status      string
	PaymentID   pgtype.Text
	CreatedAt   pgtype.Timestamptz
	PaidAt      pgtype.Timestamptz
}

func (s *OrderStore) rowToOrder(row orderRow) (*Order, error) {
	total, err := decimal.NewFromString(row.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid total amount for order %d: %w", row.ID, err)
	}

	order := &Order{
		ID:          row.ID,
		CartID:      row.CartID,
		Email:       row.Email,
		FullName:    row.FullName,
		TotalAmount: total,
		Status:      OrderStatus(row.Status),
		CreatedAt:   row.CreatedAt.Time,
	}
	if row.PaymentID.Valid {
		order.PaymentID = row.PaymentID.String
	}
	if row.PaidAt.Valid {
		order.PaidAt = row.PaidAt.Time
	}
	return order, nil
}
