package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	radix "github.com/mediocregopher/radix/v3"
	"github.com/pkg/errors"
)

// DefaultTTL 购物车在 Redis 中的保留时间
const DefaultTTL = 7 * 24 * time.Hour

// SnapshotItem 持久化的条目，只保存商品 id 与数量
type SnapshotItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Snapshot 持久化的购物车
type Snapshot struct {
	Items []SnapshotItem `json:"items"`
}

// Storage 购物车持久化边界，不存在的 key 返回空快照
type Storage interface {
	Load(ctx context.Context, key string) (Snapshot, error)
	Save(ctx context.Context, key string, snap Snapshot) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage 进程内存储，用于本地开发和测试
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]Snapshot
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]Snapshot)}
}

func (m *MemoryStorage) Load(ctx context.Context, key string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := m.data[key]
	snap.Items = append([]SnapshotItem(nil), snap.Items...)
	return snap, nil
}

func (m *MemoryStorage) Save(ctx context.Context, key string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap.Items = append([]SnapshotItem(nil), snap.Items...)
	m.data[key] = snap
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// RedisStorage 以 JSON 形式保存在 Redis，key 为 cart:<session>
type RedisStorage struct {
	redis radix.Client
	ttl   time.Duration
}

// NewRedisStorage 创建 Redis 存储，ttl<=0 时使用默认 7 天
func NewRedisStorage(redis radix.Client, ttl time.Duration) *RedisStorage {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStorage{redis: redis, ttl: ttl}
}

func (r *RedisStorage) key(k string) string {
	return "cart:" + k
}

func (r *RedisStorage) Load(ctx context.Context, key string) (Snapshot, error) {
	var raw []byte
	mn := radix.MaybeNil{Rcv: &raw}
	if err := r.redis.Do(radix.Cmd(&mn, "GET", r.key(key))); err != nil {
		return Snapshot{}, err
	}
	if mn.Nil || len(raw) == 0 {
		return Snapshot{}, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// 数据损坏，丢弃后当作空购物车
		_ = r.redis.Do(radix.Cmd(nil, "DEL", r.key(key)))
		return Snapshot{}, nil
	}
	return snap, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, snap Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "marshal cart")
	}
	return r.redis.Do(radix.FlatCmd(nil, "SETEX", r.key(key), int64(r.ttl/time.Second), body))
}

func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	return r.redis.Do(radix.Cmd(nil, "DEL", r.key(key)))
}
