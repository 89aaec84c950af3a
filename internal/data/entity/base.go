package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The API speaks plain JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

type Base struct {
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
