package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusSucceeded OrderStatus = "SUCCEEDED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID          int64
	CartID      int64
	Email       string
	FullName    string
	TotalAmount decimal.Decimal
	Status      OrderStatus
	PaymentID   string
	CreatedAt   time.Time
	PaidAt      time.Time
}

type CartItem struct {
	ID            int64
	CartID        int64
	ItemID        int64
	IngredientIDs []int64
	CreatedAt     time.Time
}
