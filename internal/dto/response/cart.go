package response

import (
	"resto-client/internal/data/entity"
)

type CartResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Cart    *entity.Cart `json:"cart,omitempty"`
}
