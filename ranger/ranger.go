package ranger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/account"
	"github.com/xy-planning-network/prestapp/api"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/http/middleware"
	"github.com/xy-planning-network/prestapp/http/req"
	"github.com/xy-planning-network/prestapp/http/resp"
	"github.com/xy-planning-network/prestapp/http/router"
	"github.com/xy-planning-network/prestapp/http/session"
	"github.com/xy-planning-network/prestapp/logger"
	"github.com/xy-planning-network/prestapp/postgres"
	"github.com/xy-planning-network/prestapp/store"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of prestapp to one another.
type Ranger struct {
	*resp.Responder

	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc
	db     *postgres.DB
	l      logger.Logger
	redis  *redis.Client
	router *router.Router
	srv    *http.Server
}

// New constructs a Ranger from the Config,
// connecting to the database, the identity provider and, when configured, Redis.
//
// New migrates the database before returning.
func New(ctx context.Context, cfg Config) (*Ranger, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	r := &Ranger{cfg: cfg, l: newLogger(cfg)}
	r.Responder = resp.NewResponder(
		resp.WithLogger(r.l),
		resp.WithContactErrMsg(fmt.Sprintf("Something went wrong. Please contact us at %s.", cfg.ContactUs)),
	)

	var err error
	r.db, err = postgres.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := postgres.MigrateUp(r.db, dbSchema, postgres.Migrations); err != nil {
		return nil, err
	}

	if cfg.RedisURL != "" {
		r.redis, err = newRedisClient(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
	}

	idp, err := auth.NewCognitoClient(ctx, cfg.Auth)
	if err != nil {
		return nil, err
	}

	authSvc, err := auth.NewService(cfg.Auth, idp, r.l)
	if err != nil {
		return nil, err
	}

	sessions, err := newSessionStore(cfg, r.redis)
	if err != nil {
		return nil, err
	}

	limiter, err := newLimiter(cfg, r.redis)
	if err != nil {
		return nil, err
	}

	users := store.NewUserStore(r.db)
	h, err := api.NewHandler(api.Services{
		Auth:      authSvc,
		DB:        r.db,
		Loans:     store.NewLoanStore(r.db),
		Logger:    r.l,
		Parser:    req.NewParser(),
		Registrar: account.NewRegistrar(authSvc, users, r.l),
		Responder: r.Responder,
		Users:     users,
	})
	if err != nil {
		return nil, err
	}

	r.router = router.New(cfg.Env, r.Responder)
	r.router.OnEveryRequest(
		middleware.ForceHTTPS(cfg.Env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(slogger(r.l)),
		middleware.CORS(origin(cfg)),
		middleware.RateLimit(r.Responder, limiter),
		middleware.InjectSession(sessions),
		middleware.CurrentUser(r.Responder, users),
	)
	h.Routes(r.router, middleware.Idempotent(r.Responder, newIdempotencyCache(r.redis)))

	r.srv = &http.Server{
		Addr:         cfg.Port,
		Handler:      r.handler(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	return r, nil
}

// DB exposes the database connection.
func (r *Ranger) DB() *postgres.DB { return r.db }

// Logger exposes the logger.Logger every component writes to.
func (r *Ranger) Logger() logger.Logger { return r.l }

// Router exposes the *router.Router for registering further routes before calling Guide.
func (r *Ranger) Router() *router.Router { return r.router }

// handler is the http.Handler the web server serves;
// in maintenance mode that is MaintModeHandler.
func (r *Ranger) handler() http.Handler {
	if r.cfg.MaintMode {
		return MaintModeHandler(r.Responder)
	}

	return r.router
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	r.ctx, r.cancel = context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			r.l.Error(fmt.Sprintf("could not listen: %s", err), &logger.LogContext{Error: err})
			r.cancel()
		}
	}()

	<-r.ctx.Done()
	return r.Shutdown()
}

// Shutdown shutdowns the web server and closes connections to the database and Redis.
func (r *Ranger) Shutdown() error {
	if r.cancel != nil {
		r.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.l.Warn("could not close Redis connection", &logger.LogContext{Error: err})
		}
	}

	if sqlDB, err := r.db.DB().DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			r.l.Warn("could not close database connection", &logger.LogContext{Error: err})
		}
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

func newLogger(cfg Config) logger.Logger {
	opts := []logger.LoggerOptFn{logger.WithEnv(cfg.Env), logger.WithLevel(cfg.LogLevel)}
	if cfg.LogJSON {
		opts = append(opts, logger.WithJSON())
	}

	al := logger.New(opts...)
	if cfg.SentryDSN == "" {
		return al
	}

	return logger.NewSentryLogger(al, cfg.SentryDSN)
}

// slogger digs the *slog.Logger out of l for middleware.LogRequest,
// which logs records rather than messages.
func slogger(l logger.Logger) *slog.Logger {
	if al, ok := l.(interface{ Slog() *slog.Logger }); ok {
		return al.Slog()
	}

	return slog.Default()
}

func origin(cfg Config) string { return cfg.BaseURL.Scheme + "://" + cfg.BaseURL.Host }

// newRedisClient parses a redis:// URL;
// pass overrides any password the URL carries.
func newRedisClient(rawURL, pass string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid: %s", prestapp.ErrBadConfig, redisURLEnvVar, err)
	}

	if pass != "" {
		opts.Password = pass
	}

	return redis.NewClient(opts), nil
}

func newSessionStore(cfg Config, client *redis.Client) (session.Service, error) {
	opts := []session.ServiceOpt{session.WithMaxAge(int(cfg.SessionMaxAge.Seconds()))}
	if client != nil {
		o := client.Options()
		opts = append(opts, session.WithRedis(o.Addr, o.Password))
	}

	return session.NewStoreService(session.Config{
		Env:         cfg.Env,
		SessionName: cfg.SessionName(),
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
	}, opts...)
}

func newLimiter(cfg Config, client *redis.Client) (middleware.Limiter, error) {
	if client == nil {
		return middleware.NewVisitors(), nil
	}

	rl, err := middleware.NewRedisLimiter(client, int64(cfg.RateLimit), cfg.RateLimitWindow)
	if err != nil {
		return nil, err
	}

	return rl, nil
}

func newIdempotencyCache(client *redis.Client) middleware.IdempotencyCacher {
	if client == nil {
		return middleware.NewIdemResMap()
	}

	return middleware.NewRedisCache(client)
}
