package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/account"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/http/middleware"
	"github.com/xy-planning-network/prestapp/http/req"
	"github.com/xy-planning-network/prestapp/http/resp"
	"github.com/xy-planning-network/prestapp/http/router"
	"github.com/xy-planning-network/prestapp/logger"
	"github.com/xy-planning-network/prestapp/store"
)

// ErrForbidden is returned when a signed in user asks for another user's resources.
var ErrForbidden = fmt.Errorf("%w: email does not match the signed in user", prestapp.ErrNotValid)

// An Authenticator exchanges credentials for an auth.Principal.
//
// [*auth.Service] implements Authenticator.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (auth.Principal, error)
}

// A Registerer signs users up.
//
// [*account.Registrar] implements Registerer.
type Registerer interface {
	Register(ctx context.Context, reg account.Registration) (prestapp.User, error)
}

// A UserService reads and updates Users.
//
// [*store.UserStore] implements UserService.
type UserService interface {
	ByEmail(ctx context.Context, email string) (prestapp.User, error)
	UpdateProfile(ctx context.Context, email string, p store.Profile) (prestapp.User, error)
}

// A LoanService records and lists Loans.
//
// [*store.LoanStore] implements LoanService.
type LoanService interface {
	Create(ctx context.Context, l *prestapp.Loan) error
	ListByEmail(ctx context.Context, email string) ([]prestapp.Loan, error)
}

// A Pinger reports whether a dependency is reachable.
//
// [*postgres.DB] implements Pinger.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are what a Handler delegates to.
type Services struct {
	Auth      Authenticator
	DB        Pinger
	Loans     LoanService
	Logger    logger.Logger
	Parser    *req.Parser
	Registrar Registerer
	Responder *resp.Responder
	Users     UserService
}

func (s Services) valid() error {
	switch {
	case s.Auth == nil:
		return fmt.Errorf("%w: Auth", prestapp.ErrMissingData)
	case s.DB == nil:
		return fmt.Errorf("%w: DB", prestapp.ErrMissingData)
	case s.Loans == nil:
		return fmt.Errorf("%w: Loans", prestapp.ErrMissingData)
	case s.Registrar == nil:
		return fmt.Errorf("%w: Registrar", prestapp.ErrMissingData)
	case s.Responder == nil:
		return fmt.Errorf("%w: Responder", prestapp.ErrMissingData)
	case s.Users == nil:
		return fmt.Errorf("%w: Users", prestapp.ErrMissingData)
	default:
		return nil
	}
}

// A Handler serves prestapp's JSON endpoints.
type Handler struct {
	auth   Authenticator
	d      *resp.Responder
	db     Pinger
	loans  LoanService
	logger logger.Logger
	p      *req.Parser
	reg    Registerer
	users  UserService
}

// NewHandler constructs a *Handler.
// Logger and Parser default when left nil; all other Services are required.
func NewHandler(s Services) (*Handler, error) {
	if err := s.valid(); err != nil {
		return nil, err
	}

	if s.Logger == nil {
		s.Logger = logger.New()
	}

	if s.Parser == nil {
		s.Parser = req.NewParser()
	}

	return &Handler{
		auth:   s.Auth,
		d:      s.Responder,
		db:     s.DB,
		loans:  s.Loans,
		logger: s.Logger,
		p:      s.Parser,
		reg:    s.Registrar,
		users:  s.Users,
	}, nil
}

// Routes registers every endpoint on rt.
// idem guards endpoints creating records; nil disables it.
func (h *Handler) Routes(rt *router.Router, idem middleware.Adapter) {
	if idem == nil {
		idem = middleware.NoopAdapter
	}

	rt.Handle(router.Route{Path: "/healthz", Method: http.MethodGet, Handler: h.health})

	api := rt.Subrouter("/api")
	api.UnauthedRoutes([]router.Route{
		{Path: "/signup", Method: http.MethodPost, Handler: h.signUp, Middlewares: []middleware.Adapter{idem}},
		{Path: "/auth/login", Method: http.MethodPost, Handler: h.login},
	})

	api.Handle(router.Route{Path: "/auth/logoff", Method: http.MethodPost, Handler: h.logoff})

	api.AuthedRoutes([]router.Route{
		{Path: "/auth/session", Method: http.MethodGet, Handler: h.session},
		{Path: "/loan/create", Method: http.MethodPost, Handler: h.createLoan, Middlewares: []middleware.Adapter{idem}},
		{Path: "/loan/list", Method: http.MethodPost, Handler: h.listLoans},
		{Path: "/loan/list", Method: http.MethodGet, Handler: h.listLoans},
		{Path: "/user/list", Method: http.MethodPost, Handler: h.listUser},
		{Path: "/user/update", Method: http.MethodPost, Handler: h.updateUser},
	})
}

// health responds 200 while the database answers, 503 otherwise.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.d.Err(w, r, err, resp.Code(http.StatusServiceUnavailable))
		return
	}

	if err := h.d.Json(w, r, resp.Data(map[string]string{"status": "ok"})); err != nil {
		h.d.Err(w, r, err)
	}
}

// ownEmail returns the signed in user when email, or the user's email if email is blank,
// belongs to them, and ErrForbidden otherwise.
func (h *Handler) ownEmail(r *http.Request, email string) (prestapp.User, string, error) {
	u, err := h.d.CurrentUser(r.Context())
	if err != nil {
		return prestapp.User{}, "", err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return u, u.Email, nil
	}

	if !strings.EqualFold(email, u.Email) {
		return prestapp.User{}, "", ErrForbidden
	}

	return u, u.Email, nil
}

// forbid responds to err, with 403 when err is ErrForbidden.
func (h *Handler) forbid(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrForbidden) {
		h.d.Err(w, r, err, resp.Code(http.StatusForbidden))
		return
	}

	h.d.Err(w, r, err)
}
