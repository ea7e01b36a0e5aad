package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
)

const (
	relatedLimit = 3
	// DefaultImage 后台新增商品未上传图片时使用
	DefaultImage = "https://images.unsplash.com/photo-1518770660439-4636190af475?w=800"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateID     = errors.New("product id already exists")
)

// Store 进程内商品目录，启动时加载一次，后台增删只作用于内存
type Store struct {
	mu       sync.RWMutex
	products []*product.Product
	byID     map[string]*product.Product
	now      func() time.Time
}

// NewStore 基于给定商品创建目录
func NewStore(products []*product.Product) *Store {
	s := &Store{now: time.Now}
	s.replace(products)
	return s
}

// Load 从仓储加载商品，表为空时使用内置种子数据
func Load(ctx context.Context, repo product.Repository) (*Store, error) {
	list, err := repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	if len(list) == 0 {
		list = Seed()
	}
	return NewStore(list), nil
}

func (s *Store) replace(products []*product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]*product.Product, 0, len(products))
	s.byID = make(map[string]*product.Product, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.products = append(s.products, p)
		s.byID[p.ID] = p
	}
}

// All 返回目录顺序的快照
func (s *Store) All() []*product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*product.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// GetByID 按 id 查找，找不到返回 nil
func (s *Store) GetByID(id string) *product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Filter 在当前目录上执行筛选排序
func (s *Store) Filter(o Options) []*product.Product {
	return Filter(s.All(), o)
}

// BestSellers 畅销商品
func (s *Store) BestSellers() []*product.Product {
	return s.where(func(p *product.Product) bool { return p.IsBestSeller })
}

// NewArrivals 新品
func (s *Store) NewArrivals() []*product.Product {
	return s.where(func(p *product.Product) bool { return p.IsNew })
}

// ByCategory 某分类下全部商品
func (s *Store) ByCategory(c product.Category) []*product.Product {
	return s.where(func(p *product.Product) bool { return p.Category == c })
}

// Related 同分类的其他商品，最多 3 个
func (s *Store) Related(p *product.Product) []*product.Product {
	out := make([]*product.Product, 0, relatedLimit)
	for _, other := range s.All() {
		if other.ID == p.ID || other.Category != p.Category {
			continue
		}
		out = append(out, other)
		if len(out) == relatedLimit {
			break
		}
	}
	return out
}

func (s *Store) where(fn func(*product.Product) bool) []*product.Product {
	var out []*product.Product
	for _, p := range s.All() {
		if fn(p) {
			out = append(out, p)
		}
	}
	return out
}

// nextID 生成 new-<毫秒>，同一毫秒内重复时追加序号
func (s *Store) nextID() string {
	base := fmt.Sprintf("new-%d", s.now().UnixMilli())
	id := base
	for n := 2; ; n++ {
		if _, taken := s.byID[id]; !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// Add 后台新增商品，补齐默认值后放到目录最前面
func (s *Store) Add(p *product.Product) (*product.Product, error) {
	if p == nil || p.Name == "" {
		return nil, errors.New("product name is required")
	}
	if !p.Category.Valid() {
		return nil, errors.Errorf("invalid category %q", p.Category)
	}
	if p.Price <= 0 {
		return nil, errors.New("price must be positive")
	}
	if p.OriginalPrice != nil && *p.OriginalPrice < p.Price {
		return nil, errors.New("original price must not be lower than price")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.nextID()
	}
	if _, dup := s.byID[p.ID]; dup {
		return nil, ErrDuplicateID
	}
	if p.Rating == 0 {
		p.Rating = 4.0
	}
	if p.Image == "" {
		p.Image = DefaultImage
	}
	p.ReviewCount = 0
	p.InStock = true
	p.IsNew = true

	s.products = append([]*product.Product{p}, s.products...)
	s.byID[p.ID] = p
	return p, nil
}

// Delete 后台删除商品
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.byID, id)
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}
