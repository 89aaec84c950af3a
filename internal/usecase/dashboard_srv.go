package usecase

import (
	"context"

	"resto-client/internal/data/entity"
	"resto-client/internal/data/repository"
	"resto-client/internal/session"
	"resto-client/internal/sync"
	"resto-client/pkg/utils"

	"go.uber.org/zap"
)

type DashboardService interface {
	Dashboard(ctx context.Context) sync.Snapshot[*entity.Dashboard]
	WatchDashboard(ctx context.Context) (stop func())
}

type dashboardService struct {
	repo *repository.Repository
	sess *session.Store
	m    mutator
	log  *zap.Logger

	dashboard *sync.Resource[*entity.Dashboard]
}

func NewDashboardService(
	repo *repository.Repository,
	config *utils.Config,
	sess *session.Store,
	store *sync.Store,
	m mutator,
	log *zap.Logger,
) DashboardService {
	return &dashboardService{
		repo: repo,
		sess: sess,
		m:    m,
		log:  log,
		dashboard: sync.NewResource[*entity.Dashboard](store, "dashboard",
			sync.Policy{RefreshInterval: config.Sync.DashboardRefresh}, log),
	}
}

// Dashboard reads the server-computed aggregate. Only an admin session
// produces a key; anyone else gets the empty snapshot without a call.
func (s *dashboardService) Dashboard(ctx context.Context) sync.Snapshot[*entity.Dashboard] {
	admin := s.sess.Current()
	key := ""
	if admin.IsAdmin() {
		key = dashboardKey(admin.ID)
	}
	return s.dashboard.Get(ctx, key, func(ctx context.Context) (*entity.Dashboard, error) {
		return s.repo.Dashboard.Fetch(ctx, admin.ID)
	})
}

func (s *dashboardService) WatchDashboard(ctx context.Context) (stop func()) {
	admin := s.sess.Current()
	if !admin.IsAdmin() {
		return func() {}
	}
	return s.dashboard.Watch(ctx, dashboardKey(admin.ID), func(ctx context.Context) (*entity.Dashboard, error) {
		return s.repo.Dashboard.Fetch(ctx, admin.ID)
	})
}
