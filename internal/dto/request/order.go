package request

type CreateOrderRequest struct {
	UserID string `json:"userId" validate:"required"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined completed"`
}
