package entity

import (
	"github.com/shopspring/decimal"
)

// DashboardStats is a read-only aggregate computed server-side.
type DashboardStats struct {
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	CompletedOrders   int             `json:"completedOrders"`
	TotalProducts     int             `json:"totalProducts"`
	AvailableProducts int             `json:"availableProducts"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
}

// Dashboard pairs the stats with the most recent orders.
type Dashboard struct {
	Stats        DashboardStats
	RecentOrders []Order
}
