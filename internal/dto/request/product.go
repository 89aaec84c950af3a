package request

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=120"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Category    string          `json:"category" validate:"required"`
	ImageURL    string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Available   bool            `json:"available"`
}

// UpdateProductRequest carries only the fields to change.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Available   *bool            `json:"available,omitempty"`
}

// ProductFilters selects a slice of the catalog. Two different filter
// sets are two different cache keys.
type ProductFilters struct {
	Search    string
	Category  string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Available *bool
}

// Query encodes the filters as URL query parameters.
func (f ProductFilters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", f.MaxPrice.String())
	}
	if f.Available != nil {
		q.Set("available", strconv.FormatBool(*f.Available))
	}
	return q
}

// Fingerprint is the canonical encoding used in cache keys.
func (f ProductFilters) Fingerprint() string {
	return f.Query().Encode()
}
