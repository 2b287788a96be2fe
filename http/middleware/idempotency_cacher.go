package middleware

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	idemResTTL       = 24 * time.Hour
	idemResKeyPrefix = "prestapp:idempotency:"
)

var (
	_ IdempotencyCacher = (*IdemResMap)(nil)
	_ IdempotencyCacher = IdemResRedis{}
)

// An IdempotencyCacher stores responses paired to idempotency keys.
type IdempotencyCacher interface {
	Get(ctx context.Context, key string) (IdemRes, bool)
	Set(ctx context.Context, key string, idemRes IdemRes)
}

// An IdemResMap stores idempotency key, IdemRes value pairs in memory.
//
// Server restarts reset an IdemResMap.
type IdemResMap struct {
	mu  sync.Mutex
	val map[string]idemResMapVal
}

type idemResMapVal struct {
	IdemRes

	at time.Time
}

// NewIdemResMap constructs an *IdemResMap.
func NewIdemResMap() *IdemResMap { return &IdemResMap{val: make(map[string]idemResMapVal)} }

// Get retrieves the IdemRes paired to key.
func (i *IdemResMap) Get(_ context.Context, key string) (IdemRes, bool) {
	if key == "" {
		return IdemRes{}, false
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	v, ok := i.val[key]
	if !ok || time.Since(v.at) > idemResTTL {
		return IdemRes{}, false
	}

	// NOTE: copy Body so callers replaying it do not drain the stored one
	v.IdemRes.Body = bytes.NewBuffer(v.IdemRes.Body.Bytes())
	return v.IdemRes, true
}

// Set overwrites the value paired to key, evicting entries older than a day.
func (i *IdemResMap) Set(_ context.Context, key string, idemRes IdemRes) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for k, v := range i.val {
		if time.Since(v.at) > idemResTTL {
			delete(i.val, k)
		}
	}

	at := time.Now()
	if prev, ok := i.val[key]; ok {
		at = prev.at
	}

	i.val[key] = idemResMapVal{IdemRes: idemRes, at: at}
}

// An IdemResRedis caches idempotent responses in Redis.
type IdemResRedis struct {
	client *redis.Client
}

// NewRedisCache constructs an IdemResRedis over client.
func NewRedisCache(client *redis.Client) IdemResRedis {
	return IdemResRedis{client: client}
}

// Get retrieves the IdemRes paired to key from Redis.
func (i IdemResRedis) Get(ctx context.Context, key string) (IdemRes, bool) {
	b, err := i.client.Get(ctx, idemResKeyPrefix+key).Bytes()
	if err != nil {
		return IdemRes{}, false
	}

	ir := new(IdemRes)
	if err := ir.GobDecode(b); err != nil {
		return IdemRes{}, false
	}

	return *ir, true
}

// Set saves the IdemRes paired to key in Redis for a day.
func (i IdemResRedis) Set(ctx context.Context, key string, idemRes IdemRes) {
	b, err := idemRes.GobEncode()
	if err != nil {
		return
	}

	i.client.Set(ctx, idemResKeyPrefix+key, b, idemResTTL)
}
