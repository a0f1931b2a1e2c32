package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront/pkg/domain/model"
)

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req model.Product
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.store.Catalog.Add(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.Product
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = mux.Vars(r)["ID"]

	if err := h.store.Catalog.Update(req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Catalog.Remove(mux.Vars(r)["ID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listOrders(w http.ResponseWriter, _ *http.Request) {
	orders, err := h.store.Checkout.Orders()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Orders []model.Order `json:"orders"`
	}{Orders: orders})
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.store.Checkout.SetStatus(mux.Vars(r)["ID"], req.Status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Users []model.User `json:"users"`
	}{Users: h.store.Session.Users()})
}

func (h *Handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Categories []model.Category `json:"categories"`
	}{Categories: h.store.Categories.List()})
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.store.Categories.Add(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.store.Categories.Rename(mux.Vars(r)["ID"], req.Name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Categories.Remove(mux.Vars(r)["ID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
