package stub

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"resto-client/internal/data/entity"
	"resto-client/internal/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrBadTransition = errors.New("status transition not allowed")
	ErrBadSecret     = errors.New("invalid admin secret")
	ErrUnavailable   = errors.New("product not available")
)

// Store is the in-memory state behind the stub server. It mirrors the
// documented behavior of the real API: derived cart totals, order
// snapshots, upsert login, the status lifecycle.
//
// Handlers encode results after the mutex is released, so every method
// returns a detached copy, never a live pointer into the store.
type Store struct {
	mu          sync.Mutex
	users       map[string]*entity.User
	products    map[string]*entity.Product
	carts       map[string]*entity.Cart
	orders      map[string]*entity.Order
	adminSecret string
}

func NewStore(adminSecret string) *Store {
	return &Store{
		users:       make(map[string]*entity.User),
		products:    make(map[string]*entity.Product),
		carts:       make(map[string]*entity.Cart),
		orders:      make(map[string]*entity.Order),
		adminSecret: adminSecret,
	}
}

// FindUser implements middleware.UserLookup.
func (s *Store) FindUser(id string) (*entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return cloneUser(user), true
}

// LoginOrCreate upserts a user by the name+cellphone pair: the same
// pair always yields the same user, a new pair creates a default-role
// account.
func (s *Store) LoginOrCreate(name, cellphone string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user := s.findByIdentity(name, cellphone); user != nil {
		return cloneUser(user)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base:      entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Cellphone: cellphone,
		Role:      entity.RoleDefault,
	}
	s.users[user.ID] = user
	return cloneUser(user)
}

// CreateAdmin upserts an admin account guarded by the shared secret.
func (s *Store) CreateAdmin(name, cellphone, secret string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if secret != s.adminSecret {
		return nil, ErrBadSecret
	}

	now := time.Now().UTC()
	if user := s.findByIdentity(name, cellphone); user != nil {
		user.Role = entity.RoleAdmin
		user.UpdatedAt = now
		return cloneUser(user), nil
	}

	user := &entity.User{
		Base:      entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Cellphone: cellphone,
		Role:      entity.RoleAdmin,
	}
	s.users[user.ID] = user
	return cloneUser(user), nil
}

func (s *Store) findByIdentity(name, cellphone string) *entity.User {
	for _, user := range s.users {
		if strings.EqualFold(user.Name, name) && user.Cellphone == cellphone {
			return user
		}
	}
	return nil
}

// ---------- products ----------

func (s *Store) ListProducts(filters request.ProductFilters) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Product
	for _, p := range s.products {
		if !matchesFilters(p, filters) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func matchesFilters(p *entity.Product, f request.ProductFilters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	return true
}

func (s *Store) FindProduct(id string) (*entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, false
	}
	return cloneProduct(p), true
}

func (s *Store) CreateProduct(req *request.CreateProductRequest) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p := &entity.Product{
		Base:        entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	}
	s.products[p.ID] = p
	return cloneProduct(p)
}

func (s *Store) UpdateProduct(id string, req *request.UpdateProductRequest) (*entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, false
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Available != nil {
		p.Available = *req.Available
	}
	p.UpdatedAt = time.Now().UTC()
	return cloneProduct(p), true
}

func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false
	}
	delete(s.products, id)
	return true
}

// ---------- carts ----------

// Cart returns the user's cart, creating an empty one on first touch.
func (s *Store) Cart(userID string) *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cartLocked(userID))
}

func (s *Store) cartLocked(userID string) *entity.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		now := time.Now().UTC()
		cart = &entity.Cart{
			Base:        entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
			UserID:      userID,
			Items:       []entity.CartItem{},
			TotalAmount: decimal.Zero,
		}
		s.carts[userID] = cart
	}
	return cart
}

func (s *Store) AddToCart(userID, productID string, quantity int) (*entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrNotFound
	}
	if !p.Available {
		return nil, ErrUnavailable
	}

	cart := s.cartLocked(userID)
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: productID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  quantity,
		})
	}

	s.recomputeTotal(cart)
	return cloneCart(cart), nil
}

func (s *Store) RemoveFromCart(userID, productID string) (*entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			s.recomputeTotal(cart)
			return cloneCart(cart), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) ClearCart(userID string) *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(userID)
	cart.Items = []entity.CartItem{}
	s.recomputeTotal(cart)
	return cloneCart(cart)
}

// recomputeTotal keeps the invariant totalAmount == sum(price*quantity).
func (s *Store) recomputeTotal(cart *entity.Cart) {
	cart.TotalAmount = cart.SumItems()
	cart.UpdatedAt = time.Now().UTC()
}

// ---------- orders ----------

// CreateOrder snapshots the user's cart into a pending order and
// empties the cart.
func (s *Store) CreateOrder(userID, notes string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	cart := s.cartLocked(userID)
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now().UTC()
	items := make([]entity.CartItem, len(cart.Items))
	copy(items, cart.Items)

	order := &entity.Order{
		Base:          entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		UserID:        userID,
		UserName:      user.Name,
		UserCellphone: user.Cellphone,
		Items:         items,
		TotalAmount:   cart.TotalAmount,
		Status:        entity.OrderStatusPending,
		Notes:         notes,
	}
	s.orders[order.ID] = order

	cart.Items = []entity.CartItem{}
	s.recomputeTotal(cart)

	return cloneOrder(order), nil
}

func (s *Store) ListOrdersByUser(userID string) []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sortOrders(out)
	return out
}

func (s *Store) ListOrders(status entity.OrderStatus) []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Order
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	sortOrders(out)
	return out
}

func (s *Store) FindOrder(id string) (*entity.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	return cloneOrder(o), true
}

func (s *Store) UpdateOrderStatus(id string, next entity.OrderStatus) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, ErrBadTransition
	}

	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return cloneOrder(o), nil
}

// newest first
func sortOrders(orders []entity.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// ---------- dashboard ----------

// Dashboard recomputes the aggregate: revenue counts completed orders
// only, recent orders are the newest ten.
func (s *Store) Dashboard() (entity.DashboardStats, []entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := entity.DashboardStats{TotalRevenue: decimal.Zero}

	var recent []entity.Order
	for _, o := range s.orders {
		stats.TotalOrders++
		switch o.Status {
		case entity.OrderStatusPending:
			stats.PendingOrders++
		case entity.OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		}
		recent = append(recent, *o)
	}

	for _, p := range s.products {
		stats.TotalProducts++
		if p.Available {
			stats.AvailableProducts++
		}
	}

	sortOrders(recent)
	if len(recent) > 10 {
		recent = recent[:10]
	}
	return stats, recent
}

// ---------- snapshots ----------

func cloneUser(u *entity.User) *entity.User {
	copied := *u
	return &copied
}

func cloneProduct(p *entity.Product) *entity.Product {
	copied := *p
	return &copied
}

func cloneCart(c *entity.Cart) *entity.Cart {
	copied := *c
	copied.Items = make([]entity.CartItem, len(c.Items))
	copy(copied.Items, c.Items)
	return &copied
}

// Order items are never mutated after checkout, but the status and
// timestamp are, so orders get the same treatment as carts.
func cloneOrder(o *entity.Order) *entity.Order {
	copied := *o
	copied.Items = make([]entity.CartItem, len(o.Items))
	copy(copied.Items, o.Items)
	return &copied
}
