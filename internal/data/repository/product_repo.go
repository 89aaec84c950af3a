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

type ProductRepository interface {
	List(ctx context.Context, filters request.ProductFilters) ([]entity.Product, error)
	FindByID(ctx context.Context, productID string) (*entity.Product, error)
	Create(ctx context.Context, adminID string, req *request.CreateProductRequest) (*entity.Product, error)
	Update(ctx context.Context, adminID, productID string, req *request.UpdateProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, adminID, productID string) error
}

type productRepository struct {
	api *restapi.Client
	log *zap.Logger
}

func NewProductRepository(api *restapi.Client, log *zap.Logger) ProductRepository {
	return &productRepository{
		api: api,
		log: log,
	}
}

func (pr *productRepository) List(ctx context.Context, filters request.ProductFilters) ([]entity.Product, error) {
	var resp response.ProductsResponse
	if err := pr.api.Get(ctx, "/api/products", filters.Query(), &resp); err != nil {
		pr.log.Error("List products failed",
			zap.Error(err),
			zap.String("filters", filters.Fingerprint()),
		)
		return nil, fmt.Errorf("list products: %w", err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("list products rejected: %s", resp.Message)
	}

	return resp.Products, nil
}

func (pr *productRepository) FindByID(ctx context.Context, productID string) (*entity.Product, error) {
	var resp response.ProductResponse
	if err := pr.api.Get(ctx, "/api/products/"+productID, nil, &resp); err != nil {
		pr.log.Error("Find product failed",
			zap.Error(err),
			zap.String("product_id", productID),
		)
		return nil, fmt.Errorf("find product %s: %w", productID, err)
	}

	if !resp.Success || resp.Product == nil {
		return nil, fmt.Errorf("find product rejected: %s", resp.Message)
	}

	return resp.Product, nil
}

func (pr *productRepository) Create(ctx context.Context, adminID string, req *request.CreateProductRequest) (*entity.Product, error) {
	var resp response.ProductResponse
	path := fmt.Sprintf("/api/admin/%s/products", adminID)
	if err := pr.api.Post(ctx, path, req, &resp); err != nil {
		pr.log.Error("Create product failed",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create product %s: %w", req.Name, err)
	}

	if !resp.Success || resp.Product == nil {
		return nil, fmt.Errorf("create product rejected: %s", resp.Message)
	}

	return resp.Product, nil
}

func (pr *productRepository) Update(ctx context.Context, adminID, productID string, req *request.UpdateProductRequest) (*entity.Product, error) {
	var resp response.ProductResponse
	path := fmt.Sprintf("/api/admin/%s/products/%s", adminID, productID)
	if err := pr.api.Put(ctx, path, req, &resp); err != nil {
		pr.log.Error("Update product failed",
			zap.Error(err),
			zap.String("product_id", productID),
		)
		return nil, fmt.Errorf("update product %s: %w", productID, err)
	}

	if !resp.Success || resp.Product == nil {
		return nil, fmt.Errorf("update product rejected: %s", resp.Message)
	}

	return resp.Product, nil
}

func (pr *productRepository) Delete(ctx context.Context, adminID, productID string) error {
	var resp response.APIResponse
	path := fmt.Sprintf("/api/admin/%s/products/%s", adminID, productID)
	if err := pr.api.Delete(ctx, path, &resp); err != nil {
		pr.log.Error("Delete product failed",
			zap.Error(err),
			zap.String("product_id", productID),
		)
		return fmt.Errorf("delete product %s: %w", productID, err)
	}

	if !resp.Success {
		return fmt.Errorf("delete product rejected: %s", resp.Message)
	}

	return nil
}
