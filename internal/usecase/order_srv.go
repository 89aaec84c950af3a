package usecase

import (
	"context"
	"fmt"

	"resto-client/internal/data/entity"
	"resto-client/internal/data/repository"
	"resto-client/internal/dto/request"
	"resto-client/internal/session"
	"resto-client/internal/sync"
	"resto-client/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	UserOrders(ctx context.Context) sync.Snapshot[[]entity.Order]
	WatchUserOrders(ctx context.Context) (stop func())
	AdminOrders(ctx context.Context, status entity.OrderStatus) sync.Snapshot[[]entity.Order]
	WatchAdminOrders(ctx context.Context, status entity.OrderStatus) (stop func())
	Checkout(ctx context.Context, notes string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, orderID string, next entity.OrderStatus) (*entity.Order, error)
}

type orderService struct {
	repo *repository.Repository
	sess *session.Store
	m    mutator
	log  *zap.Logger

	userOrders  *sync.Resource[[]entity.Order]
	adminOrders *sync.Resource[[]entity.Order]
}

func NewOrderService(
	repo *repository.Repository,
	config *utils.Config,
	sess *session.Store,
	store *sync.Store,
	m mutator,
	log *zap.Logger,
) OrderService {
	return &orderService{
		repo: repo,
		sess: sess,
		m:    m,
		log:  log,
		userOrders: sync.NewResource[[]entity.Order](store, "user_orders",
			sync.Policy{RefreshInterval: config.Sync.UserOrdersRefresh}, log),
		// Admin list polls tighter, it is operational.
		adminOrders: sync.NewResource[[]entity.Order](store, "admin_orders",
			sync.Policy{RefreshInterval: config.Sync.AdminOrdersRefresh}, log),
	}
}

func (s *orderService) UserOrders(ctx context.Context) sync.Snapshot[[]entity.Order] {
	user := s.sess.Current()
	key := ""
	if user != nil {
		key = userOrdersKey(user.ID)
	}
	return s.userOrders.Get(ctx, key, func(ctx context.Context) ([]entity.Order, error) {
		return s.repo.Order.ListByUser(ctx, user.ID)
	})
}

func (s *orderService) WatchUserOrders(ctx context.Context) (stop func()) {
	user := s.sess.Current()
	if user == nil {
		return func() {}
	}
	return s.userOrders.Watch(ctx, userOrdersKey(user.ID), func(ctx context.Context) ([]entity.Order, error) {
		return s.repo.Order.ListByUser(ctx, user.ID)
	})
}

func (s *orderService) AdminOrders(ctx context.Context, status entity.OrderStatus) sync.Snapshot[[]entity.Order] {
	admin, err := s.requireAdmin()
	if err != nil {
		return sync.Snapshot[[]entity.Order]{}
	}
	return s.adminOrders.Get(ctx, adminOrdersKey(admin.ID, status), func(ctx context.Context) ([]entity.Order, error) {
		return s.repo.Order.ListAll(ctx, admin.ID, status)
	})
}

func (s *orderService) WatchAdminOrders(ctx context.Context, status entity.OrderStatus) (stop func()) {
	admin, err := s.requireAdmin()
	if err != nil {
		return func() {}
	}
	return s.adminOrders.Watch(ctx, adminOrdersKey(admin.ID, status), func(ctx context.Context) ([]entity.Order, error) {
		return s.repo.Order.ListAll(ctx, admin.ID, status)
	})
}

// Checkout snapshots the current cart into a new pending order. On
// success both the cart and the user's order list are stale and get
// invalidated.
func (s *orderService) Checkout(ctx context.Context, notes string) (*entity.Order, error) {
	user := s.sess.Current()
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	req := &request.CreateOrderRequest{UserID: user.ID, Notes: notes}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var order *entity.Order
	err := s.m.run(ctx, "Checkout", func(ctx context.Context) error {
		var err error
		order, err = s.repo.Order.Create(ctx, req)
		return err
	}, invalidation{keys: []string{
		cartKey(user.ID),
		userOrdersKey(user.ID),
	}})
	if err != nil {
		return nil, err
	}

	s.m.notifier.Success(fmt.Sprintf("Order placed, total %s", order.TotalAmount.StringFixed(2)))
	return order, nil
}

// UpdateStatus moves an order along its lifecycle. Transitions outside
// pending->accepted->completed / pending->declined are rejected before
// any network call. On success the admin order lists (every status
// filter) and the dashboard are invalidated.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, next entity.OrderStatus) (*entity.Order, error) {
	admin, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}

	if !next.Valid() || next == entity.OrderStatusPending {
		return nil, fmt.Errorf("invalid target status %q", next)
	}

	current, err := s.repo.Order.FindByID(ctx, admin.ID, orderID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		s.m.notifier.Error(fmt.Sprintf("Cannot move order from %s to %s", current.Status, next))
		return nil, &ReportedError{
			Err: fmt.Errorf("order %s: transition %s -> %s not allowed", orderID, current.Status, next),
		}
	}

	var order *entity.Order
	err = s.m.run(ctx, "Update order status", func(ctx context.Context) error {
		var err error
		order, err = s.repo.Order.UpdateStatus(ctx, admin.ID, orderID, next)
		return err
	}, invalidation{
		keys:     []string{dashboardKey(admin.ID)},
		prefixes: []string{adminOrdersPrefix(admin.ID)},
	})
	if err != nil {
		return nil, err
	}

	s.m.notifier.Success(fmt.Sprintf("Order marked %s", next))
	return order, nil
}

func (s *orderService) requireAdmin() (*entity.User, error) {
	user := s.sess.Current()
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	if !user.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return user, nil
}
