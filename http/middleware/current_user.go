package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/resp"
)

// A UserStorer retrieves a prestapp.User by the ID stored in a session.
type UserStorer interface {
	GetByID(ctx context.Context, id uint) (prestapp.User, error)
}

// CurrentUser pulls the user ID out of the session InjectSession stored,
// retrieves the matching prestapp.User and stores it in *http.Request.Context
// under prestapp.CurrentUserKey.
//
// A request without a user in its session passes through untouched;
// RequireAuthed and RequireUnauthed decide what to do with it.
// When the user in the session no longer exists or no longer has access,
// CurrentUser clears the session and responds 401.
// Any other failure looking the user up leaves the session alone.
//
// If d or storer are nil, NoopAdapter returns and this middleware does nothing.
func CurrentUser(d *resp.Responder, storer UserStorer) Adapter {
	if d == nil || storer == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := GetSession(r.Context())
			if !ok {
				d.Err(w, r, fmt.Errorf("%w: no session", resp.ErrNoUser))
				return
			}

			uid, err := s.UserID()
			if err != nil {
				handler.ServeHTTP(w, r)
				return
			}

			user, err := storer.GetByID(r.Context(), uid)
			if err != nil && !errors.Is(err, prestapp.ErrNotFound) {
				d.Err(w, r, err)
				return
			}

			if err != nil {
				if err := s.Delete(w, r); err != nil {
					d.Err(w, r, err)
					return
				}

				d.Err(w, r, err, resp.Code(http.StatusUnauthorized))
				return
			}

			if !user.HasAccess() {
				if err := s.DeregisterUser(w, r); err != nil {
					d.Err(w, r, err)
					return
				}

				d.Err(w, r, fmt.Errorf("%w: user %d has no access", resp.ErrNoUser, user.ID))
				return
			}

			if err := s.ResetExpiry(w, r); err != nil {
				_ = s.Delete(w, r)
				d.Err(w, r, err)
				return
			}

			w.Header().Add("Cache-Control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			ctx := context.WithValue(r.Context(), prestapp.CurrentUserKey, user)
			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// RequireAuthed requires a prestapp.User be set in the request context
// under prestapp.CurrentUserKey, responding 401 otherwise.
func RequireAuthed(d *resp.Responder) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := d.CurrentUser(r.Context()); err != nil {
				d.Err(w, r, err)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

// RequireUnauthed requires no prestapp.User be set in the request context,
// responding 400 otherwise.
func RequireUnauthed(d *resp.Responder) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, err := d.CurrentUser(r.Context()); err == nil {
				d.Err(
					w, r,
					fmt.Errorf("%w: user %d already signed in", prestapp.ErrNotValid, u.ID),
					resp.Code(http.StatusBadRequest),
				)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}
