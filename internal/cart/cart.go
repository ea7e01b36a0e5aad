package cart

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
)

// MaxQuantity 单个条目的数量上限，超出部分截断
const MaxQuantity = 99

// Item 购物车条目，Product 为目录中商品的共享引用
type Item struct {
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

// Subtotal 单价乘数量
func (i Item) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Product.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func clampQuantity(q int) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// Resolver 根据 id 找回商品，找不到返回 nil
type Resolver func(id string) *product.Product

// Store 一个会话的购物车，每次变更后立即写回 Storage
type Store struct {
	mu         sync.Mutex
	key        string
	storage    Storage
	items      []*Item
	totalItems int
	totalPrice decimal.Decimal
}

// New 创建空购物车
func New(storage Storage, key string) *Store {
	return &Store{key: key, storage: storage}
}

// Open 从 Storage 恢复购物车，已下架的商品会被丢弃
func Open(ctx context.Context, storage Storage, key string, resolve Resolver) (*Store, error) {
	snap, err := storage.Load(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	s := New(storage, key)
	for _, line := range snap.Items {
		p := resolve(line.ProductID)
		if p == nil || line.Quantity <= 0 {
			continue
		}
		if it := s.find(p.ID); it != nil {
			it.Quantity = clampQuantity(it.Quantity + clampQuantity(line.Quantity))
			continue
		}
		s.items = append(s.items, &Item{Product: p, Quantity: clampQuantity(line.Quantity)})
	}
	s.recompute()
	return s, nil
}

func (s *Store) find(id string) *Item {
	for _, it := range s.items {
		if it.Product.ID == id {
			return it
		}
	}
	return nil
}

func (s *Store) recompute() {
	s.totalItems = 0
	s.totalPrice = decimal.Zero
	for _, it := range s.items {
		s.totalItems += it.Quantity
		s.totalPrice = s.totalPrice.Add(it.Subtotal())
	}
}

func (s *Store) snapshot() Snapshot {
	snap := Snapshot{Items: make([]SnapshotItem, 0, len(s.items))}
	for _, it := range s.items {
		snap.Items = append(snap.Items, SnapshotItem{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	return snap
}

// commit 重新计算合计并持久化，调用方持有锁
func (s *Store) commit(ctx context.Context) error {
	s.recompute()
	if len(s.items) == 0 {
		return s.storage.Delete(ctx, s.key)
	}
	return s.storage.Save(ctx, s.key, s.snapshot())
}

// AddToCart 加入购物车，已存在则累加数量；数量非正时按 1 处理，累计不超过 MaxQuantity
func (s *Store) AddToCart(ctx context.Context, p *product.Product, quantity int) error {
	if p == nil {
		return errors.New("product is required")
	}
	if quantity <= 0 {
		quantity = 1
	}
	quantity = clampQuantity(quantity)
	s.mu.Lock()
	defer s.mu.Unlock()
	if it := s.find(p.ID); it != nil {
		it.Quantity = clampQuantity(it.Quantity + quantity)
	} else {
		s.items = append(s.items, &Item{Product: p, Quantity: quantity})
	}
	return s.commit(ctx)
}

// UpdateQuantity 设置数量，非正数等同于移除
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.find(productID)
	if it == nil {
		return nil
	}
	it.Quantity = clampQuantity(quantity)
	return s.commit(ctx)
}

// RemoveFromCart 移除商品，不存在时什么都不做
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.commit(ctx)
		}
	}
	return nil
}

// ClearCart 清空购物车
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.commit(ctx)
}

// Items 条目快照（插入顺序）
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	return out
}

// TotalItems 商品总件数
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

// TotalPrice 商品总价（不含税）
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}
