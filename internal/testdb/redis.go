package testdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis is an in-process stand-in for pkg/redis.Client covering the calls the
// HTTP layer, session manager and permission cache make. Expiry is ignored.
type Redis struct {
	mu       sync.Mutex
	data     map[string]string
	counters map[string]int64
	PingErr  error
}

func NewRedis() *Redis {
	return &Redis{data: map[string]string{}, counters: map[string]int64{}}
}

func (r *Redis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = fmt.Sprint(value)
	return nil
}

func (r *Redis) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (r *Redis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; ok {
		return false, nil
	}
	r.data[key] = fmt.Sprint(value)
	return true, nil
}

func (r *Redis) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[key]++
	return r.counters[key], nil
}

func (r *Redis) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		delete(r.data, key)
		delete(r.counters, key)
	}
	return nil
}

func (r *Redis) Ping(context.Context) error { return r.PingErr }

func (r *Redis) IdempotencyKey(scope, id string) string {
	return strings.Join([]string{"ts", "idempotency", scope, id}, ":")
}

func (r *Redis) AccessSessionKey(accessID string) string {
	return "ts:session:access:" + accessID
}

func (r *Redis) PermissionCacheKey(userID string) string {
	return "ts:perms:" + userID
}

// Len reports how many plain keys are stored.
func (r *Redis) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
