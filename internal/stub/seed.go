package stub

import (
	"resto-client/internal/dto/request"

	"github.com/shopspring/decimal"
)

// Seed loads a small sample menu so a freshly started stub is usable.
func (s *Store) Seed() {
	items := []request.CreateProductRequest{
		{
			Name:        "Margherita Pizza",
			Description: "Tomato, mozzarella and basil",
			Price:       decimal.NewFromFloat(12.50),
			Category:    "Main",
			Available:   true,
		},
		{
			Name:        "Penne Arrabbiata",
			Description: "Penne in a spicy tomato sauce",
			Price:       decimal.NewFromFloat(10.00),
			Category:    "Main",
			Available:   true,
		},
		{
			Name:        "Tiramisu",
			Description: "Mascarpone, espresso, cocoa",
			Price:       decimal.NewFromFloat(6.00),
			Category:    "Dessert",
			Available:   true,
		},
		{
			Name:        "House Lemonade",
			Description: "Fresh lemon, lightly sweetened",
			Price:       decimal.NewFromFloat(3.50),
			Category:    "Drinks",
			Available:   true,
		},
	}

	for i := range items {
		s.CreateProduct(&items[i])
	}
}
