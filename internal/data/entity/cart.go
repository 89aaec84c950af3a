package entity

import (
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price * quantity for this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	Base
	UserID      string          `json:"userId"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// ItemCount sums quantities over all lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// SumItems recomputes the total from the lines. The server-sent
// TotalAmount must always equal this sum.
func (c *Cart) SumItems() decimal.Decimal {
	sum := decimal.Zero
	if c == nil {
		return sum
	}
	for _, item := range c.Items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}
