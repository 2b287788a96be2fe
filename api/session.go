package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/account"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/http/middleware"
	"github.com/xy-planning-network/prestapp/http/resp"
	"github.com/xy-planning-network/prestapp/logger"
)

// A login is what signing in submits.
//
// Blank fields are left for Authenticate to refuse.
type login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login authenticates the submitted credentials with the identity provider
// and, when a local User matches, registers them in the session.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body login
	if err := h.p.ParseBody(r.Body, &body); err != nil {
		h.d.Err(w, r, err)
		return
	}

	principal, err := h.auth.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	u, err := h.users.ByEmail(r.Context(), principal.Email)
	if errors.Is(err, prestapp.ErrNotFound) {
		h.logger.Warn("identity provider user has no local user", &logger.LogContext{
			Error:   err,
			Request: r,
			Data:    map[string]any{"sub": principal.ID},
		})
		h.d.Err(w, r, fmt.Errorf("%w: %s", auth.ErrNotAuthenticated, err))
		return
	}

	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.signIn(w, r, u, principal.ID); err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Json(w, r, resp.Data(principal), resp.User(u)); err != nil {
		h.d.Err(w, r, err)
	}
}

// logoff clears the session, signed in or not.
func (h *Handler) logoff(w http.ResponseWriter, r *http.Request) {
	if s, ok := middleware.GetSession(r.Context()); ok {
		if err := s.Delete(w, r); err != nil {
			h.d.Err(w, r, err)
			return
		}
	}

	if err := h.d.Json(w, r, resp.Code(http.StatusNoContent)); err != nil {
		h.d.Err(w, r, err)
	}
}

// session responds with the signed in user.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	if err := h.d.Json(w, r, resp.Authed()); err != nil {
		h.d.Err(w, r, err)
	}
}

// signUp registers a new user and signs them in.
func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var reg account.Registration
	if err := h.p.ParseBody(r.Body, &reg); err != nil {
		h.d.Err(w, r, err)
		return
	}

	u, err := h.reg.Register(r.Context(), reg)
	if err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.signIn(w, r, u, u.ExternalID); err != nil {
		h.d.Err(w, r, err)
		return
	}

	if err := h.d.Json(w, r, resp.Code(http.StatusCreated), resp.Data(u), resp.User(u)); err != nil {
		h.d.Err(w, r, err)
	}
}

// signIn registers u in the request's session.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u prestapp.User, sub string) error {
	s, ok := middleware.GetSession(r.Context())
	if !ok {
		return fmt.Errorf("%w: no session to sign %d into", prestapp.ErrUnexpected, u.ID)
	}

	return s.RegisterUser(w, r, u.ID, sub)
}
