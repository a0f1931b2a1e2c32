package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/app"
	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

type Handler struct {
	store *app.Store
}

func Router(store *app.Store) http.Handler {
	h := &Handler{store: store}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/refresh", h.refreshProducts).Methods(http.MethodPost)
	s.HandleFunc("/products/{ID}", h.getProduct).Methods(http.MethodGet)

	s.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	s.HandleFunc("/cart", h.clearCart).Methods(http.MethodDelete)
	s.HandleFunc("/cart/items", h.addCartItem).Methods(http.MethodPost)
	s.HandleFunc("/cart/items/{ID}", h.setCartQuantity).Methods(http.MethodPut)
	s.HandleFunc("/cart/items/{ID}", h.removeCartItem).Methods(http.MethodDelete)

	s.HandleFunc("/wishlist", h.getWishlist).Methods(http.MethodGet)
	s.HandleFunc("/wishlist", h.clearWishlist).Methods(http.MethodDelete)
	s.HandleFunc("/wishlist/toggle", h.toggleWishlist).Methods(http.MethodPost)
	s.HandleFunc("/wishlist/{ID}/move-to-cart", h.moveToCart).Methods(http.MethodPost)

	s.HandleFunc("/auth/signup", h.signup).Methods(http.MethodPost)
	s.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	s.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	s.HandleFunc("/auth/me", h.me).Methods(http.MethodGet)

	s.HandleFunc("/checkout", h.checkout).Methods(http.MethodPost)

	s.HandleFunc("/access/decision", h.accessDecision).Methods(http.MethodGet)

	admin := s.PathPrefix("/admin").Subrouter()
	admin.Use(h.adminOnly)
	admin.HandleFunc("/products", h.addProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{ID}", h.updateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{ID}", h.removeProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{ID}/status", h.setOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	admin.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories", h.addCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{ID}", h.renameCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{ID}", h.removeCategory).Methods(http.MethodDelete)

	return logMiddleware(r)
}

func (h *Handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	resp := struct {
		Products []model.Product `json:"products"`
		Loading  bool            `json:"loading"`
		Error    string          `json:"error,omitempty"`
	}{
		Products: h.store.Catalog.List(),
		Loading:  h.store.Catalog.Loading(),
	}
	if err := h.store.Catalog.Err(); err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) refreshProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Catalog.Refresh(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": len(h.store.Catalog.List())})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ID"]
	product, err := h.store.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if product == nil {
		writeError(w, model.ErrProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Items  []model.CartEntry `json:"items"`
		Totals model.CartTotals  `json:"totals"`
	}{
		Items:  h.store.Cart.Items(),
		Totals: h.store.Cart.Totals(),
	})
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product  model.Product `json:"product"`
		Quantity int           `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.store.Cart.AddItem(req.Product, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.store.Cart.SetQuantity(mux.Vars(r)["ID"], req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Cart.RemoveItem(mux.Vars(r)["ID"]); err != nil {
		writeError(w, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Cart.Clear(); err != nil {
		writeError(w, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) getWishlist(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Items []model.Product `json:"items"`
	}{Items: h.store.Wishlist.Items()})
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product model.Product `json:"product"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	added, err := h.store.Wishlist.Toggle(req.Product)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Added bool            `json:"added"`
		Items []model.Product `json:"items"`
	}{Added: added, Items: h.store.Wishlist.Items()})
}

func (h *Handler) clearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Wishlist.Clear(); err != nil {
		writeError(w, err)
		return
	}
	h.getWishlist(w, r)
}

// moveToCart is two sequential, independently persisted operations: remove
// from the wishlist, then add to the cart. Not atomic; both are safe to
// retry.
func (h *Handler) moveToCart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ID"]

	var product *model.Product
	for _, item := range h.store.Wishlist.Items() {
		if item.ID == id {
			found := item
			product = &found
			break
		}
	}
	if product == nil {
		writeError(w, model.ErrProductNotFound)
		return
	}

	if err := h.store.Wishlist.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.Cart.AddItem(*product, 1); err != nil {
		writeError(w, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName     string        `json:"firstName"`
		LastName      string        `json:"lastName"`
		Email         string        `json:"email"`
		Phone         string        `json:"phone"`
		Address       model.Address `json:"address"`
		PaymentMethod string        `json:"paymentMethod"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.store.Checkout.PlaceOrder(r.Context(), service.CheckoutDetails{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) accessDecision(w http.ResponseWriter, r *http.Request) {
	role := h.currentRole()
	path := r.URL.Query().Get("path")

	allowed := []model.Role{model.RoleUser, model.RoleAdmin}
	if raw := r.URL.Query().Get("allowed"); raw != "" {
		allowed = allowed[:0]
		for _, part := range strings.Split(raw, ",") {
			allowed = append(allowed, model.Role(strings.TrimSpace(part)))
		}
	}

	writeJSON(w, http.StatusOK, service.Decide(role, allowed, path))
}

// currentRole falls back to the anonymous role, matching the storefront's
// protected-route behavior.
func (h *Handler) currentRole() model.Role {
	if user, ok := h.store.Session.Current(); ok {
		return user.Role
	}
	return model.RoleUser
}

func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Gate on the logical route, not the API mount point.
		path := strings.TrimPrefix(r.URL.Path, "/api/v1")
		decision := service.Decide(h.currentRole(), []model.Role{model.RoleAdmin}, path)
		if !decision.Render {
			writeJSON(w, http.StatusForbidden, decision)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrUserNotFound), errors.Is(err, model.ErrInvalidPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrDuplicateTitle),
		errors.Is(err, model.ErrDuplicateCategory),
		errors.Is(err, model.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, model.ErrEmptyCart), errors.Is(err, model.ErrInvalidOrderStatus):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrCategoryNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
