package response

import (
	"resto-client/internal/data/entity"
)

type OrdersResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Orders  []entity.Order `json:"orders"`
}

type OrderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Order   *entity.Order `json:"order,omitempty"`
}

type DashboardResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message,omitempty"`
	Stats        entity.DashboardStats `json:"stats"`
	RecentOrders []entity.Order        `json:"recentOrders"`
}
