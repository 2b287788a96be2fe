package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/resp"
)

const (
	defaultRate  = 5
	defaultBurst = 20
	visitorTTL   = time.Hour
)

// ErrTooMany is returned when a client exceeds its request allowance.
var ErrTooMany = fmt.Errorf("%w: too many requests", prestapp.ErrNotValid)

// A Limiter decides whether the client identified by key may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

var (
	_ Limiter = (*Visitors)(nil)
	_ Limiter = RedisLimiter{}
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address in memory.
//
// Visitors suits a single server process.
type Visitors struct {
	val map[string]Visitor
	sync.Mutex
}

func NewVisitors() *Visitors { return &Visitors{val: make(map[string]Visitor)} }

// Allow implements Limiter, also evicting visitors not seen for an hour.
func (vs *Visitors) Allow(_ context.Context, ip string) (bool, error) {
	ok := vs.Fetch(ip).Limiter.Allow()
	vs.cleanup()
	return ok, nil
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
//
// Newly created visitors are limited to 5 requests every second with bursts of up to 20.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(defaultRate, defaultBurst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// A RedisLimiter counts requests per key in fixed windows stored in Redis,
// sharing allowances across server processes.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter constructs a RedisLimiter allowing limit requests per window.
//
// limit and window must be positive, otherwise NewRedisLimiter returns prestapp.ErrBadConfig.
func NewRedisLimiter(client *redis.Client, limit int64, window time.Duration) (RedisLimiter, error) {
	switch {
	case client == nil:
		return RedisLimiter{}, fmt.Errorf("%w: nil Redis client", prestapp.ErrBadConfig)
	case limit <= 0:
		return RedisLimiter{}, fmt.Errorf("%w: rate limit must be positive, got %d", prestapp.ErrBadConfig, limit)
	case window <= 0:
		return RedisLimiter{}, fmt.Errorf("%w: rate limit window must be positive, got %s", prestapp.ErrBadConfig, window)
	}

	return RedisLimiter{client: client, limit: limit, window: window}, nil
}

// Allow implements Limiter.
//
// A RedisLimiter not built by NewRedisLimiter returns prestapp.ErrBadConfig.
func (rl RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if rl.client == nil || rl.window <= 0 {
		return false, fmt.Errorf("%w: RedisLimiter not configured", prestapp.ErrBadConfig)
	}

	slot := time.Now().UnixNano() / int64(rl.window)
	k := "prestapp:ratelimit:" + key + ":" + strconv.FormatInt(slot, 10)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("%w: %s", prestapp.ErrUnexpected, err)
	}

	return incr.Val() <= rl.limit, nil
}

// RateLimit responds 429 to clients, identified by GetIPAddress, the Limiter refuses.
//
// Should the Limiter fail, the request is let through.
func RateLimit(d *resp.Responder, l Limiter) Adapter {
	if d == nil || l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), GetIPAddress(r))
			if err == nil && !ok {
				d.Err(w, r, ErrTooMany, resp.Code(http.StatusTooManyRequests))
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
