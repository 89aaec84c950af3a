// Package stub is an in-memory implementation of the ordering API used
// for local development and end-to-end tests. It mirrors the documented
// contract of the remote server, which stays the source of truth in
// production.
package stub

import (
	"encoding/json"
	"errors"
	"net/http"

	"resto-client/internal/data/entity"
	"resto-client/internal/dto/request"
	"resto-client/internal/dto/response"
	"resto-client/pkg/middleware"
	"resto-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type handler struct {
	store *Store
	log   *zap.Logger
}

// NewServer builds the stub router with the shared middleware stack.
func NewServer(store *Store, logger *zap.Logger) *chi.Mux {
	h := &handler{store: store, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Post("/api/auth/login", h.login)
	r.Get("/api/auth/profile/{userId}", h.profile)
	r.Post("/api/auth/create-admin", h.createAdmin)

	r.Get("/api/products", h.listProducts)
	r.Get("/api/products/{productId}", h.getProduct)

	r.Get("/api/cart/{userId}", h.getCart)
	r.Post("/api/cart/add", h.addToCart)
	r.Delete("/api/cart/remove/{userId}/{productId}", h.removeFromCart)
	r.Delete("/api/cart/clear/{userId}", h.clearCart)

	r.Post("/api/orders/create", h.createOrder)
	r.Get("/api/orders/user/{userId}", h.userOrders)

	r.Route("/api/admin/{adminId}", func(r chi.Router) {
		r.Use(middleware.AdminGuard(store, logger))
		r.Post("/products", h.adminCreateProduct)
		r.Put("/products/{productId}", h.adminUpdateProduct)
		r.Delete("/products/{productId}", h.adminDeleteProduct)
		r.Get("/orders", h.adminOrders)
		r.Get("/orders/{orderId}", h.adminGetOrder)
		r.Patch("/orders/{orderId}/status", h.adminUpdateStatus)
		r.Get("/dashboard", h.dashboard)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// ---------- auth ----------

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	user := h.store.LoginOrCreate(req.Name, req.Cellphone)
	utils.ResponseJSON(w, http.StatusOK, response.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
	})
}

func (h *handler) profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.store.FindUser(chi.URLParam(r, "userId"))
	if !ok {
		utils.ResponseNotFound(w, "User not found")
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.UserResponse{Success: true, User: user})
}

func (h *handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	user, err := h.store.CreateAdmin(req.Name, req.Cellphone, req.AdminSecret)
	if err != nil {
		utils.ResponseForbidden(w, "Invalid admin secret")
		return
	}
	utils.ResponseJSON(w, http.StatusCreated, response.LoginResponse{
		Success: true,
		Message: "Admin created",
		User:    user,
	})
}

// ---------- products ----------

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error())
		return
	}

	products := h.store.ListProducts(filters)
	if products == nil {
		products = []entity.Product{}
	}
	utils.ResponseJSON(w, http.StatusOK, response.ProductsResponse{
		Success:  true,
		Products: products,
	})
}

func parseFilters(r *http.Request) (request.ProductFilters, error) {
	q := r.URL.Query()
	filters := request.ProductFilters{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}

	if v := q.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filters, errors.New("invalid minPrice")
		}
		filters.MinPrice = &d
	}
	if v := q.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return filters, errors.New("invalid maxPrice")
		}
		filters.MaxPrice = &d
	}
	if v := q.Get("available"); v != "" {
		available := v == "true"
		filters.Available = &available
	}
	return filters, nil
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.store.FindProduct(chi.URLParam(r, "productId"))
	if !ok {
		utils.ResponseNotFound(w, "Product not found")
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.ProductResponse{Success: true, Product: product})
}

func (h *handler) adminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	product := h.store.CreateProduct(&req)
	utils.ResponseJSON(w, http.StatusCreated, response.ProductResponse{
		Success: true,
		Message: "Product created",
		Product: product,
	})
}

func (h *handler) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	product, ok := h.store.UpdateProduct(chi.URLParam(r, "productId"), &req)
	if !ok {
		utils.ResponseNotFound(w, "Product not found")
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.ProductResponse{
		Success: true,
		Message: "Product updated",
		Product: product,
	})
}

func (h *handler) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteProduct(chi.URLParam(r, "productId")) {
		utils.ResponseNotFound(w, "Product not found")
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.APIResponse{
		Success: true,
		Message: "Product deleted",
	})
}

// ---------- cart ----------

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart := h.store.Cart(chi.URLParam(r, "userId"))
	utils.ResponseJSON(w, http.StatusOK, response.CartResponse{Success: true, Cart: cart})
}

func (h *handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req request.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	cart, err := h.store.AddToCart(req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.ResponseNotFound(w, "Product not found")
		case errors.Is(err, ErrUnavailable):
			utils.ResponseBadRequest(w, "Product not available")
		default:
			utils.ResponseInternalError(w, "Could not add to cart")
		}
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.CartResponse{
		Success: true,
		Message: "Item added",
		Cart:    cart,
	})
}

func (h *handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.RemoveFromCart(chi.URLParam(r, "userId"), chi.URLParam(r, "productId"))
	if err != nil {
		utils.ResponseNotFound(w, "Item not in cart")
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.CartResponse{
		Success: true,
		Message: "Item removed",
		Cart:    cart,
	})
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	cart := h.store.ClearCart(chi.URLParam(r, "userId"))
	utils.ResponseJSON(w, http.StatusOK, response.CartResponse{
		Success: true,
		Message: "Cart cleared",
		Cart:    cart,
	})
}

// ---------- orders ----------

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	order, err := h.store.CreateOrder(req.UserID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.ResponseNotFound(w, "User not found")
		case errors.Is(err, ErrEmptyCart):
			utils.ResponseBadRequest(w, "Cart is empty")
		default:
			utils.ResponseInternalError(w, "Could not create order")
		}
		return
	}
	utils.ResponseJSON(w, http.StatusCreated, response.OrderResponse{
		Success: true,
		Message: "Order created",
		Order:   order,
	})
}

func (h *handler) userOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.store.ListOrdersByUser(chi.URLParam(r, "userId"))
	if orders == nil {
		orders = []entity.Order{}
	}
	utils.ResponseJSON(w, http.StatusOK, response.OrdersResponse{Success: true, Orders: orders})
}

func (h *handler) adminOrders(w http.ResponseWriter, r *http.Request) {
	status := entity.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		utils.ResponseBadRequest(w, "Invalid status filter")
		return
	}

	orders := h.store.ListOrders(status)
	if orders == nil {
		orders = []entity.Order{}
	}
	utils.ResponseJSON(w, http.StatusOK, response.OrdersResponse{Success: true, Orders: orders})
}

func (h *handler) adminGetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.store.FindOrder(chi.URLParam(r, "orderId"))
	if !ok {
		utils.ResponseNotFound(w, "Order not found")
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.OrderResponse{Success: true, Order: order})
}

func (h *handler) adminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	order, err := h.store.UpdateOrderStatus(chi.URLParam(r, "orderId"), entity.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.ResponseNotFound(w, "Order not found")
		case errors.Is(err, ErrBadTransition):
			utils.ResponseBadRequest(w, "Status transition not allowed")
		default:
			utils.ResponseInternalError(w, "Could not update status")
		}
		return
	}
	utils.ResponseJSON(w, http.StatusOK, response.OrderResponse{
		Success: true,
		Message: "Status updated",
		Order:   order,
	})
}

// ---------- dashboard ----------

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, recent := h.store.Dashboard()
	if recent == nil {
		recent = []entity.Order{}
	}
	utils.ResponseJSON(w, http.StatusOK, response.DashboardResponse{
		Success:      true,
		Stats:        stats,
		RecentOrders: recent,
	})
}
