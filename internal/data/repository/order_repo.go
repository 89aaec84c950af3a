package repository

import (
	"context"
	"fmt"
	"net/url"

	"resto-client/internal/data/entity"
	"resto-client/internal/dto/request"
	"resto-client/internal/dto/response"
	"resto-client/pkg/restapi"

	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, req *request.CreateOrderRequest) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
	ListAll(ctx context.Context, adminID string, status entity.OrderStatus) ([]entity.Order, error)
	FindByID(ctx context.Context, adminID, orderID string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, adminID, orderID string, status entity.OrderStatus) (*entity.Order, error)
}

type orderRepository struct {
	api *restapi.Client
	log *zap.Logger
}

func NewOrderRepository(api *restapi.Client, log *zap.Logger) OrderRepository {
	return &orderRepository{
		api: api,
		log: log,
	}
}

// Create checks out the user's current cart as a new pending order.
func (or *orderRepository) Create(ctx context.Context, req *request.CreateOrderRequest) (*entity.Order, error) {
	var resp response.OrderResponse
	if err := or.api.Post(ctx, "/api/orders/create", req, &resp); err != nil {
		or.log.Error("Create order failed",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}

	if !resp.Success || resp.Order == nil {
		return nil, fmt.Errorf("create order rejected: %s", resp.Message)
	}

	return resp.Order, nil
}

func (or *orderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	var resp response.OrdersResponse
	if err := or.api.Get(ctx, "/api/orders/user/"+userID, nil, &resp); err != nil {
		or.log.Error("List user orders failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("list orders for %s: %w", userID, err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("list orders rejected: %s", resp.Message)
	}

	return resp.Orders, nil
}

// ListAll returns every order; status narrows the list when non-empty.
func (or *orderRepository) ListAll(ctx context.Context, adminID string, status entity.OrderStatus) ([]entity.Order, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{string(status)}}
	}

	var resp response.OrdersResponse
	path := fmt.Sprintf("/api/admin/%s/orders", adminID)
	if err := or.api.Get(ctx, path, query, &resp); err != nil {
		or.log.Error("List all orders failed",
			zap.Error(err),
			zap.String("admin_id", adminID),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("list all orders: %w", err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("list all orders rejected: %s", resp.Message)
	}

	return resp.Orders, nil
}

func (or *orderRepository) FindByID(ctx context.Context, adminID, orderID string) (*entity.Order, error) {
	var resp response.OrderResponse
	path := fmt.Sprintf("/api/admin/%s/orders/%s", adminID, orderID)
	if err := or.api.Get(ctx, path, nil, &resp); err != nil {
		or.log.Error("Find order failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}

	if !resp.Success || resp.Order == nil {
		return nil, fmt.Errorf("find order rejected: %s", resp.Message)
	}

	return resp.Order, nil
}

func (or *orderRepository) UpdateStatus(ctx context.Context, adminID, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	var resp response.OrderResponse
	path := fmt.Sprintf("/api/admin/%s/orders/%s/status", adminID, orderID)
	body := request.UpdateOrderStatusRequest{Status: string(status)}
	if err := or.api.Patch(ctx, path, &body, &resp); err != nil {
		or.log.Error("Update order status failed",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update order %s status: %w", orderID, err)
	}

	if !resp.Success || resp.Order == nil {
		return nil, fmt.Errorf("update order status rejected: %s", resp.Message)
	}

	return resp.Order, nil
}
