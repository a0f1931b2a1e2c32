package transport

import (
	"net/http"

	"storefront/pkg/domain/service"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.store.Session.Signup(req.Name, req.Phone, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		// From is the originally requested path, if any.
		From string `json:"from"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.store.Session.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		User       any    `json:"user"`
		RedirectTo string `json:"redirectTo"`
	}{
		User:       user,
		RedirectTo: service.LandingPath(user.Role, req.From),
	})
}

func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.Logout(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirectTo": service.FallbackPath})
}

func (h *Handler) me(w http.ResponseWriter, _ *http.Request) {
	user, ok := h.store.Session.Current()
	writeJSON(w, http.StatusOK, struct {
		User          any  `json:"user,omitempty"`
		Authenticated bool `json:"authenticated"`
	}{User: user, Authenticated: ok})
}
