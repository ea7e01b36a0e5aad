package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	radix "github.com/mediocregopher/radix/v3"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/user"
)

// SessionStorage 会话持久化边界，没有记录时 Load 返回 nil, nil
type SessionStorage interface {
	Load(ctx context.Context, key string) (*user.User, error)
	Save(ctx context.Context, key string, u *user.User) error
	Delete(ctx context.Context, key string) error
}

// MemorySessionStorage 进程内实现
type MemorySessionStorage struct {
	mu   sync.RWMutex
	data map[string]user.User
}

func NewMemorySessionStorage() *MemorySessionStorage {
	return &MemorySessionStorage{data: make(map[string]user.User)}
}

func (m *MemorySessionStorage) Load(ctx context.Context, key string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemorySessionStorage) Save(ctx context.Context, key string, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	cp.PasswordHash = ""
	m.data[key] = cp
	return nil
}

func (m *MemorySessionStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// RedisSessionStorage 以 JSON 保存在 session:<id>
type RedisSessionStorage struct {
	redis radix.Client
	ttl   time.Duration
}

// NewRedisSessionStorage ttl<=0 时默认 24 小时
func NewRedisSessionStorage(redis radix.Client, ttl time.Duration) *RedisSessionStorage {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStorage{redis: redis, ttl: ttl}
}

func (r *RedisSessionStorage) key(k string) string {
	return "session:" + k
}

func (r *RedisSessionStorage) Load(ctx context.Context, key string) (*user.User, error) {
	var raw []byte
	mn := radix.MaybeNil{Rcv: &raw}
	if err := r.redis.Do(radix.Cmd(&mn, "GET", r.key(key))); err != nil {
		return nil, err
	}
	if mn.Nil || len(raw) == 0 {
		return nil, nil
	}
	var u user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		_ = r.redis.Do(radix.Cmd(nil, "DEL", r.key(key)))
		return nil, nil
	}
	return &u, nil
}

func (r *RedisSessionStorage) Save(ctx context.Context, key string, u *user.User) error {
	body, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return r.redis.Do(radix.FlatCmd(nil, "SETEX", r.key(key), int64(r.ttl/time.Second), body))
}

func (r *RedisSessionStorage) Delete(ctx context.Context, key string) error {
	return r.redis.Do(radix.Cmd(nil, "DEL", r.key(key)))
}
