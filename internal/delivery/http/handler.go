package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/metrics"
	"github.com/tiendaonline/backend/internal/service"
)

// Handler handles HTTP requests for the application.
type Handler struct {
	authSvc     *service.AuthService
	catalogSvc  *service.CatalogService
	cartSvc     *service.CartService
	checkoutSvc *service.CheckoutService
	orderSvc    *service.OrderService
	metrics     *metrics.ServerMetrics
}

func NewHandler(
	authSvc *service.AuthService,
	catalogSvc *service.CatalogService,
	cartSvc *service.CartService,
	checkoutSvc *service.CheckoutService,
	orderSvc *service.OrderService,
	m *metrics.ServerMetrics,
) *Handler {
	return &Handler{
		authSvc:     authSvc,
		catalogSvc:  catalogSvc,
		cartSvc:     cartSvc,
		checkoutSvc: checkoutSvc,
		orderSvc:    orderSvc,
		metrics:     m,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	route := func(pattern, name string, fn http.HandlerFunc) {
		var handler http.Handler = fn
		if h.metrics != nil {
			handler = h.metrics.Middleware(name, handler)
		}
		mux.Handle(pattern, handler)
	}

	route("POST /api/auth/register", "register", h.handleRegister)
	route("POST /api/auth/login", "login", h.handleLogin)
	route("POST /api/auth/logout", "logout", h.handleLogout)
	route("GET /api/auth/session", "session", h.handleSession)
	route("GET /api/auth/profile", "profile", h.requireAuth(h.handleProfile))

	route("GET /api/products", "list_products", h.handleListProducts)
	route("GET /api/products/{id}", "get_product", h.handleGetProduct)
	route("GET /api/categories", "list_categories", h.handleListCategories)

	route("POST /api/cart/items", "cart_add", h.requireAuth(h.handleAddCartItem))
	route("DELETE /api/cart/items/{product_id}", "cart_remove", h.requireAuth(h.handleRemoveCartItem))
	route("GET /api/cart", "cart_list", h.requireAuth(h.handleGetCart))

	route("POST /api/checkout", "checkout", h.requireAuth(h.handleCheckout))
	route("GET /api/orders", "list_orders", h.requireAuth(h.handleGetOrders))
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", entity.ErrInvalidInput))
		return
	}

	user, err := h.authSvc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"user_id": user.ID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", entity.ErrInvalidInput))
		return
	}

	token, id, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"name":  id.Name,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.authSvc.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// handleSession reports whether the presented token (if any) is still
// valid. Anonymous callers get 200 with logged_in=false.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
		return
	}

	id, err := h.authSvc.Authenticate(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"logged_in": true, "name": id.Name})
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	user, err := h.authSvc.Profile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.ProductFilter{
		CategoryID: q.Get("category"),
		Search:     q.Get("q"),
		Sort:       entity.ProductSort(q.Get("sort")),
	}

	if raw := q.Get("min_price"); raw != "" {
		min, err := entity.ParseCents(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: min_price: %v", entity.ErrInvalidInput, err))
			return
		}
		filter.MinPrice = &min
	}
	if raw := q.Get("max_price"); raw != "" {
		max, err := entity.ParseCents(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: max_price: %v", entity.ErrInvalidInput, err))
			return
		}
		filter.MaxPrice = &max
	}

	products, err := h.catalogSvc.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if products == nil {
		products = []entity.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogSvc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogSvc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []entity.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", entity.ErrInvalidInput))
		return
	}

	line, err := h.cartSvc.AddItem(r.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (h *Handler) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	if err := h.cartSvc.RemoveItem(r.Context(), id, r.PathValue("product_id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "removed"})
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	cart, err := h.cartSvc.ListItems(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if cart.Lines == nil {
		cart.Lines = []entity.CartLine{}
	}
	writeJSON(w, http.StatusOK, cart)
}

type checkoutRequest struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	PaymentMethod string `json:"payment_method"`
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", entity.ErrInvalidInput))
		return
	}

	order, err := h.checkoutSvc.Checkout(r.Context(), id, service.CheckoutInput{
		Street:        req.Street,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
	})
}

func (h *Handler) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	orders, err := h.orderSvc.RecentOrders(r.Context(), id, 50)
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
