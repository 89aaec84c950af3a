package usecase

import (
	"context"
	"errors"
	"fmt"

	"resto-client/internal/data/entity"
	"resto-client/internal/data/repository"
	"resto-client/internal/dto/request"
	"resto-client/internal/session"
	"resto-client/internal/sync"
	"resto-client/pkg/restapi"
	"resto-client/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrAdminOnly        = errors.New("admin access required")
)

// Notifier surfaces transient user-visible notifications. The view
// layer supplies the implementation; flows never crash on a failed
// call, they notify and leave cached state untouched.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ReportedError marks a failure the user has already seen as a
// notification. Callers printing errors should skip these.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

type Service struct {
	Auth      AuthService
	Product   ProductService
	Cart      CartService
	Order     OrderService
	Dashboard DashboardService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	store *sync.Store,
	sess *session.Store,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	m := mutator{store: store, notifier: notifier, log: logger}
	return &Service{
		Auth:      NewAuthService(repo, sess, m, logger),
		Product:   NewProductService(repo, sess, store, m, logger),
		Cart:      NewCartService(repo, sess, store, m, logger),
		Order:     NewOrderService(repo, config, sess, store, m, logger),
		Dashboard: NewDashboardService(repo, config, sess, store, m, logger),
	}
}

// ---------- cache keys ----------
// Keys mirror the API paths, so two reads with different parameters
// never share an entry.

func productsKey(filters request.ProductFilters) string {
	if fp := filters.Fingerprint(); fp != "" {
		return productsListKey + "?" + fp
	}
	return productsListKey
}

func productKey(productID string) string {
	return "/api/products/" + productID
}

// The query prefix covers every filtered catalog entry without also
// matching the /api/products/<id> detail keys; the unfiltered list is
// its own key.
const (
	productsListKey     = "/api/products"
	productsQueryPrefix = "/api/products?"
)

func cartKey(userID string) string {
	return "/api/cart/" + userID
}

func userOrdersKey(userID string) string {
	return "/api/orders/user/" + userID
}

func adminOrdersKey(adminID string, status entity.OrderStatus) string {
	key := adminOrdersPrefix(adminID)
	if status != "" {
		key += "?status=" + string(status)
	}
	return key
}

func adminOrdersPrefix(adminID string) string {
	return fmt.Sprintf("/api/admin/%s/orders", adminID)
}

func dashboardKey(adminID string) string {
	return fmt.Sprintf("/api/admin/%s/dashboard", adminID)
}

// ---------- mutation protocol ----------

// invalidation names the cache entries a successful mutation affects.
type invalidation struct {
	keys     []string
	prefixes []string
}

// mutator runs the uniform write protocol shared by every mutation
// flow: invoke, await the result, then on success invalidate the
// dependent reads, on failure notify. A mutation is a single
// all-or-nothing network call; there is no retry and no compensation.
type mutator struct {
	store    *sync.Store
	notifier Notifier
	log      *zap.Logger
}

func (m mutator) run(ctx context.Context, op string, call func(context.Context) error, inv invalidation) error {
	if err := call(ctx); err != nil {
		m.log.Warn("Mutation failed",
			zap.String("op", op),
			zap.Error(err),
		)
		m.notifier.Error(notifyText(op, err))
		return &ReportedError{Err: err}
	}

	m.store.Invalidate(ctx, inv.keys...)
	for _, prefix := range inv.prefixes {
		m.store.InvalidatePrefix(ctx, prefix)
	}
	return nil
}

// notifyText keeps server-reported messages and hides transport noise.
func notifyText(op string, err error) string {
	var apiErr *restapi.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", op, apiErr.Message)
	}
	return fmt.Sprintf("%s: request failed", op)
}
