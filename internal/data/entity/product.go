package entity

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Base
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Available   bool            `json:"available"`
}
