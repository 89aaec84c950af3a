package repository

import (
	"context"
	"fmt"

	"resto-client/internal/data/entity"
	"resto-client/internal/dto/request"
	"resto-client/internal/dto/response"
	"resto-client/pkg/restapi"

	"go.uber.org/zap"
)

type CartRepository interface {
	Find(ctx context.Context, userID string) (*entity.Cart, error)
	AddItem(ctx context.Context, req *request.AddToCartRequest) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*entity.Cart, error)
	Clear(ctx context.Context, userID string) (*entity.Cart, error)
}

type cartRepository struct {
	api *restapi.Client
	log *zap.Logger
}

func NewCartRepository(api *restapi.Client, log *zap.Logger) CartRepository {
	return &cartRepository{
		api: api,
		log: log,
	}
}

func (cr *cartRepository) Find(ctx context.Context, userID string) (*entity.Cart, error) {
	var resp response.CartResponse
	if err := cr.api.Get(ctx, "/api/cart/"+userID, nil, &resp); err != nil {
		cr.log.Error("Fetch cart failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("fetch cart %s: %w", userID, err)
	}

	if !resp.Success || resp.Cart == nil {
		return nil, fmt.Errorf("fetch cart rejected: %s", resp.Message)
	}

	return resp.Cart, nil
}

func (cr *cartRepository) AddItem(ctx context.Context, req *request.AddToCartRequest) (*entity.Cart, error) {
	var resp response.CartResponse
	if err := cr.api.Post(ctx, "/api/cart/add", req, &resp); err != nil {
		cr.log.Error("Add to cart failed",
			zap.Error(err),
			zap.String("user_id", req.UserID),
			zap.String("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
		)
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	if !resp.Success || resp.Cart == nil {
		return nil, fmt.Errorf("add to cart rejected: %s", resp.Message)
	}

	return resp.Cart, nil
}

func (cr *cartRepository) RemoveItem(ctx context.Context, userID, productID string) (*entity.Cart, error) {
	var resp response.CartResponse
	path := fmt.Sprintf("/api/cart/remove/%s/%s", userID, productID)
	if err := cr.api.Delete(ctx, path, &resp); err != nil {
		cr.log.Error("Remove from cart failed",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("product_id", productID),
		)
		return nil, fmt.Errorf("remove from cart: %w", err)
	}

	if !resp.Success || resp.Cart == nil {
		return nil, fmt.Errorf("remove from cart rejected: %s", resp.Message)
	}

	return resp.Cart, nil
}

func (cr *cartRepository) Clear(ctx context.Context, userID string) (*entity.Cart, error) {
	var resp response.CartResponse
	if err := cr.api.Delete(ctx, "/api/cart/clear/"+userID, &resp); err != nil {
		cr.log.Error("Clear cart failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("clear cart %s: %w", userID, err)
	}

	if !resp.Success || resp.Cart == nil {
		return nil, fmt.Errorf("clear cart rejected: %s", resp.Message)
	}

	return resp.Cart, nil
}
