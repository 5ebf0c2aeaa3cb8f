package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// IdemTTL is how long a response stays replayable under its Idempotency-Key.
const IdemTTL = 24 * time.Hour

var (
	_ IdempotencyCacher = (*IdemResMap)(nil)
	_ IdempotencyCacher = IdemResRedis{}
)

// An IdempotencyCacher holds the response a POST produced, keyed by its Idempotency-Key.
//
// Idempotent calls Set with a zero Status when a key is first seen, marking it in flight,
// then again as the handler writes its envelope.
// Get reports false for an empty key, an unknown key or one stored longer than IdemTTL ago.
type IdempotencyCacher interface {
	Get(ctx context.Context, key string) (IdemRes, bool)
	Set(ctx context.Context, key string, idemRes IdemRes)
}

// An IdemResMap holds responses in process memory.
//
// Instances do not share it and a restart empties it;
// ranger falls back to it only when REDIS_URI is unset.
type IdemResMap struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]idemEntry
}

type idemEntry struct {
	res IdemRes
	at  time.Time
}

func NewIdemResMap() *IdemResMap {
	return &IdemResMap{now: time.Now, entries: make(map[string]idemEntry)}
}

func (m *IdemResMap) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" || ctx.Err() != nil {
		return IdemRes{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || m.expired(e) {
		return IdemRes{}, false
	}

	return e.res, true
}

// Set stores idemRes under key, first evicting every expired entry.
func (m *IdemResMap) Set(ctx context.Context, key string, idemRes IdemRes) {
	if key == "" || ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, k)
		}
	}

	m.entries[key] = idemEntry{res: idemRes, at: m.now()}
}

func (m *IdemResMap) expired(e idemEntry) bool { return m.now().Sub(e.at) >= IdemTTL }

// An IdemResRedis holds responses in Redis, shared by every instance pointed at it.
//
// Keys live under "idempotency:" and expire after IdemTTL.
type IdemResRedis struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(opts *redis.Options) IdemResRedis {
	return IdemResRedis{client: redis.NewClient(opts), prefix: "idempotency:"}
}

// Close releases the Redis client; (*ranger.Ranger).Shutdown calls it.
func (c IdemResRedis) Close() error { return c.client.Close() }

// Get reports false when Redis cannot be reached or holds nothing decodable for key.
func (c IdemResRedis) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" {
		return IdemRes{}, false
	}

	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return IdemRes{}, false
	}

	ir := new(IdemRes)
	if err := ir.GobDecode(b); err != nil {
		return IdemRes{}, false
	}

	return *ir, true
}

// Set stores idemRes under key, restarting its IdemTTL.
// A failed write is dropped and the key's next request runs its handler again.
func (c IdemResRedis) Set(ctx context.Context, key string, idemRes IdemRes) {
	if key == "" {
		return
	}

	b, err := idemRes.GobEncode()
	if err != nil {
		return
	}

	c.client.Set(ctx, c.prefix+key, b, IdemTTL)
}
