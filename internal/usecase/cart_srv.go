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

type CartService interface {
	Cart(ctx context.Context) sync.Snapshot[*entity.Cart]
	Add(ctx context.Context, productID string, quantity int) error
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

type cartService struct {
	repo *repository.Repository
	sess *session.Store
	m    mutator
	log  *zap.Logger

	// The cart revalidates whenever its consumer comes back to it.
	cart *sync.Resource[*entity.Cart]
}

func NewCartService(
	repo *repository.Repository,
	sess *session.Store,
	store *sync.Store,
	m mutator,
	log *zap.Logger,
) CartService {
	return &cartService{
		repo: repo,
		sess: sess,
		m:    m,
		log:  log,
		cart: sync.NewResource[*entity.Cart](store, "cart", sync.Policy{RevalidateOnFocus: true}, log),
	}
}

// Cart reads the logged-in user's cart. With nobody logged in the key
// is absent, so no request is issued and the snapshot reports
// not-loading, no-data.
func (s *cartService) Cart(ctx context.Context) sync.Snapshot[*entity.Cart] {
	user := s.sess.Current()
	key := ""
	if user != nil {
		key = cartKey(user.ID)
	}
	return s.cart.Get(ctx, key, func(ctx context.Context) (*entity.Cart, error) {
		return s.repo.Cart.Find(ctx, user.ID)
	})
}

func (s *cartService) Add(ctx context.Context, productID string, quantity int) error {
	user := s.sess.Current()
	if user == nil {
		return ErrNotAuthenticated
	}

	req := &request.AddToCartRequest{
		UserID:    user.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add to cart validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	err := s.m.run(ctx, "Add to cart", func(ctx context.Context) error {
		_, err := s.repo.Cart.AddItem(ctx, req)
		return err
	}, invalidation{keys: []string{cartKey(user.ID)}})
	if err != nil {
		return err
	}

	s.m.notifier.Success("Added to cart")
	return nil
}

func (s *cartService) Remove(ctx context.Context, productID string) error {
	user := s.sess.Current()
	if user == nil {
		return ErrNotAuthenticated
	}

	err := s.m.run(ctx, "Remove from cart", func(ctx context.Context) error {
		_, err := s.repo.Cart.RemoveItem(ctx, user.ID, productID)
		return err
	}, invalidation{keys: []string{cartKey(user.ID)}})
	if err != nil {
		return err
	}

	s.m.notifier.Success("Removed from cart")
	return nil
}

func (s *cartService) Clear(ctx context.Context) error {
	user := s.sess.Current()
	if user == nil {
		return ErrNotAuthenticated
	}

	err := s.m.run(ctx, "Clear cart", func(ctx context.Context) error {
		_, err := s.repo.Cart.Clear(ctx, user.ID)
		return err
	}, invalidation{keys: []string{cartKey(user.ID)}})
	if err != nil {
		return err
	}

	s.m.notifier.Success("Cart cleared")
	return nil
}
