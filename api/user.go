package api

import (
	"net/http"

	"github.com/xy-planning-network/prestapp/http/resp"
	"github.com/xy-planning-network/prestapp/store"
)

// A profileUpdate is what editing a profile submits.
type profileUpdate struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,number"`
}

// listUser responds with the User for an email.
func (h *Handler) listUser(w http.ResponseWriter, r *http.Request) {
	var q emailQuery
	if err := h.p.ParseBody(r.Body, &q); err != nil {
		h.d.Err(w, r, err)
		return
	}

	_, email, err := h.ownEmail(r, q.Email)
	if err != nil {
		h.forbid(w, r, err)
		return
	}

	u, err := h.users.ByEmail(r.Context(), email)
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Json(w, r, resp.Data(u)); err != nil {
		h.d.Err(w, r, err)
	}
}

// updateUser changes the name and phone number of the User for an email.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var body profileUpdate
	if err := h.p.ParseBody(r.Body, &body); err != nil {
		h.d.Err(w, r, err)
		return
	}

	_, email, err := h.ownEmail(r, body.Email)
	if err != nil {
		h.forbid(w, r, err)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), email, store.Profile{Name: body.Name, PhoneNumber: body.PhoneNumber})
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Json(w, r, resp.Data(u), resp.User(u)); err != nil {
		h.d.Err(w, r, err)
	}
}
