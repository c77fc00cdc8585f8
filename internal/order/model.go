package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int
	UserID      int
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []OrderItem
}

// OrderItem carries the price the product had when the order was
// placed. Later product price changes must not affect it.
type OrderItem struct {
	ID        int
	OrderID   int
	ProductID int
	Quantity  int
	Price     decimal.Decimal
}

// ItemRequest is one requested line of a new order.
type ItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}
