package entity

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusDeclined  OrderStatus = "declined"
	OrderStatusCompleted OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusDeclined, OrderStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo enforces the order lifecycle:
// pending -> accepted -> completed, or pending -> declined (terminal).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusAccepted || next == OrderStatusDeclined
	case OrderStatusAccepted:
		return next == OrderStatusCompleted
	}
	return false
}

// Order is an immutable snapshot of a cart at checkout time.
type Order struct {
	Base
	UserID        string          `json:"userId"`
	UserName      string          `json:"userName"`
	UserCellphone string          `json:"userCellphone"`
	Items         []CartItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        OrderStatus     `json:"status"`
	Notes         string          `json:"notes,omitempty"`
}
