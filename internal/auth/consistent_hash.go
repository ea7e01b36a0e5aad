package auth

import (
	"hash/crc32"
	"sort"
	"strconv"
	"sync"
)

// ConsistentHashRing 一致性哈希环，用于把 token 缓存分散到不同的 key 空间
type ConsistentHashRing struct {
	hash     func(data []byte) uint32
	replicas int
	mu       sync.RWMutex
	keys     []int // 已排序的虚拟节点哈希
	owners   map[int]string
	nodes    map[string]struct{}
}

// NewConsistentHashRing 创建哈希环，nodes 为空时放一个默认节点
func NewConsistentHashRing(nodes []string, replicas int) *ConsistentHashRing {
	if replicas <= 0 {
		replicas = 50
	}
	if len(nodes) == 0 {
		nodes = []string{"auth-node-default"}
	}
	ch := &ConsistentHashRing{
		hash:     crc32.ChecksumIEEE,
		replicas: replicas,
		owners:   make(map[int]string),
		nodes:    make(map[string]struct{}),
	}
	ch.Add(nodes...)
	return ch
}

func (c *ConsistentHashRing) virtualHash(node string, i int) int {
	return int(c.hash([]byte(node + "#" + strconv.Itoa(i))))
}

// Add 批量添加节点，已存在的忽略
func (c *ConsistentHashRing) Add(nodes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, node := range nodes {
		if _, ok := c.nodes[node]; ok {
			continue
		}
		c.nodes[node] = struct{}{}
		for i := 0; i < c.replicas; i++ {
			h := c.virtualHash(node, i)
			c.keys = append(c.keys, h)
			c.owners[h] = node
		}
	}
	sort.Ints(c.keys)
}

// GetNode 根据 key 获取负责的节点，环为空时返回空串
func (c *ConsistentHashRing) GetNode(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.keys) == 0 {
		return ""
	}
	h := int(c.hash([]byte(key)))
	idx := sort.Search(len(c.keys), func(i int) bool { return c.keys[i] >= h })
	if idx == len(c.keys) {
		idx = 0
	}
	return c.owners[c.keys[idx]]
}
