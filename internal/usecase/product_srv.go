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

type ProductService interface {
	Products(ctx context.Context, filters request.ProductFilters) sync.Snapshot[[]entity.Product]
	ProductByID(ctx context.Context, productID string) sync.Snapshot[*entity.Product]
	Create(ctx context.Context, req *request.CreateProductRequest) (*entity.Product, error)
	Update(ctx context.Context, productID string, req *request.UpdateProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, productID string) error
}

type productService struct {
	repo *repository.Repository
	sess *session.Store
	m    mutator
	log  *zap.Logger

	// The catalog does not poll: it refetches only on explicit
	// mutation or filter change.
	catalog *sync.Resource[[]entity.Product]
	detail  *sync.Resource[*entity.Product]
}

func NewProductService(
	repo *repository.Repository,
	sess *session.Store,
	store *sync.Store,
	m mutator,
	log *zap.Logger,
) ProductService {
	return &productService{
		repo:    repo,
		sess:    sess,
		m:       m,
		log:     log,
		catalog: sync.NewResource[[]entity.Product](store, "products", sync.Policy{}, log),
		detail:  sync.NewResource[*entity.Product](store, "product", sync.Policy{}, log),
	}
}

// Products reads the catalog slice selected by filters. The catalog is
// public: no session is required.
func (s *productService) Products(ctx context.Context, filters request.ProductFilters) sync.Snapshot[[]entity.Product] {
	return s.catalog.Get(ctx, productsKey(filters), func(ctx context.Context) ([]entity.Product, error) {
		return s.repo.Product.List(ctx, filters)
	})
}

func (s *productService) ProductByID(ctx context.Context, productID string) sync.Snapshot[*entity.Product] {
	key := ""
	if productID != "" {
		key = productKey(productID)
	}
	return s.detail.Get(ctx, key, func(ctx context.Context) (*entity.Product, error) {
		return s.repo.Product.FindByID(ctx, productID)
	})
}

func (s *productService) Create(ctx context.Context, req *request.CreateProductRequest) (*entity.Product, error) {
	admin, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}

	// Price > 0 and required fields are a UX nicety here; the server
	// remains the authority.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var product *entity.Product
	err = s.m.run(ctx, "Create product", func(ctx context.Context) error {
		var err error
		product, err = s.repo.Product.Create(ctx, admin.ID, req)
		return err
	}, invalidation{
		keys:     []string{productsListKey},
		prefixes: []string{productsQueryPrefix},
	})
	if err != nil {
		return nil, err
	}

	s.m.notifier.Success(fmt.Sprintf("Product %q created", product.Name))
	return product, nil
}

func (s *productService) Update(ctx context.Context, productID string, req *request.UpdateProductRequest) (*entity.Product, error) {
	admin, err := s.requireAdmin()
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var product *entity.Product
	err = s.m.run(ctx, "Update product", func(ctx context.Context) error {
		var err error
		product, err = s.repo.Product.Update(ctx, admin.ID, productID, req)
		return err
	}, invalidation{
		keys:     []string{productKey(productID), productsListKey},
		prefixes: []string{productsQueryPrefix},
	})
	if err != nil {
		return nil, err
	}

	s.m.notifier.Success(fmt.Sprintf("Product %q updated", product.Name))
	return product, nil
}

func (s *productService) Delete(ctx context.Context, productID string) error {
	admin, err := s.requireAdmin()
	if err != nil {
		return err
	}

	err = s.m.run(ctx, "Delete product", func(ctx context.Context) error {
		return s.repo.Product.Delete(ctx, admin.ID, productID)
	}, invalidation{
		keys:     []string{productKey(productID), productsListKey},
		prefixes: []string{productsQueryPrefix},
	})
	if err != nil {
		return err
	}

	s.m.notifier.Success("Product deleted")
	return nil
}

func (s *productService) requireAdmin() (*entity.User, error) {
	user := s.sess.Current()
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	if !user.IsAdmin() {
		return nil, ErrAdminOnly
	}
	return user, nil
}
