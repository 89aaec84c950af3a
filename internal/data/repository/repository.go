package repository

import (
	"resto-client/pkg/restapi"

	"go.uber.org/zap"
)

// Repository groups the per-resource endpoint wrappers. Every method
// maps a domain operation to exactly one HTTP call; the server stays
// authoritative for all business validation.
type Repository struct {
	Auth      AuthRepository
	Product   ProductRepository
	Cart      CartRepository
	Order     OrderRepository
	Dashboard DashboardRepository
}

func NewRepository(api *restapi.Client, log *zap.Logger) *Repository {
	return &Repository{
		Auth:      NewAuthRepository(api, log),
		Product:   NewProductRepository(api, log),
		Cart:      NewCartRepository(api, log),
		Order:     NewOrderRepository(api, log),
		Dashboard: NewDashboardRepository(api, log),
	}
}
