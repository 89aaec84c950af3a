package response

import (
	"resto-client/internal/data/entity"
)

type ProductsResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Products []entity.Product `json:"products"`
}

type ProductResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Product *entity.Product `json:"product,omitempty"`
}
