package repository

import (
	"context"
	"fmt"

	"resto-client/internal/data/entity"
	"resto-client/internal/dto/response"
	"resto-client/pkg/restapi"

	"go.uber.org/zap"
)

type DashboardRepository interface {
	Fetch(ctx context.Context, adminID string) (*entity.Dashboard, error)
}

type dashboardRepository struct {
	api *restapi.Client
	log *zap.Logger
}

func NewDashboardRepository(api *restapi.Client, log *zap.Logger) DashboardRepository {
	return &dashboardRepository{
		api: api,
		log: log,
	}
}

func (dr *dashboardRepository) Fetch(ctx context.Context, adminID string) (*entity.Dashboard, error) {
	var resp response.DashboardResponse
	path := fmt.Sprintf("/api/admin/%s/dashboard", adminID)
	if err := dr.api.Get(ctx, path, nil, &resp); err != nil {
		dr.log.Error("Fetch dashboard failed",
			zap.Error(err),
			zap.String("admin_id", adminID),
		)
		return nil, fmt.Errorf("fetch dashboard: %w", err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("fetch dashboard rejected: %s", resp.Message)
	}

	return &entity.Dashboard{
		Stats:        resp.Stats,
		RecentOrders: resp.RecentOrders,
	}, nil
}
