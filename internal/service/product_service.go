package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/catalog"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
)

// ListQuery 商品列表的原始查询参数
type ListQuery struct {
	Category string
	MinPrice string
	MaxPrice string
	InStock  string
	Sort     string
}

// ProductDetail 商品详情及相关推荐
type ProductDetail struct {
	Product *product.Product   `json:"product"`
	Related []*product.Product `json:"related"`
}

// ProductService 前台目录查询与后台增删，后台增删只作用于内存目录
type ProductService struct {
	store *catalog.Store
	repo  product.Repository
}

// NewProductService 创建商品服务
func NewProductService(store *catalog.Store, repo product.Repository) *ProductService {
	return &ProductService{store: store, repo: repo}
}

// ParseListQuery 把查询参数转成筛选条件，非法值返回 Validation
func ParseListQuery(q ListQuery) (catalog.Options, error) {
	o := catalog.DefaultOptions()

	category, ok := catalog.ParseCategory(strings.TrimSpace(q.Category))
	if !ok {
		return o, Validation("Invalid category: %s", q.Category)
	}
	o.Category = category

	sortKey, ok := catalog.ParseSort(strings.TrimSpace(q.Sort))
	if !ok {
		return o, Validation("Invalid sort: %s", q.Sort)
	}
	o.Sort = sortKey

	if q.MinPrice != "" {
		v, err := strconv.ParseInt(q.MinPrice, 10, 64)
		if err != nil || v < 0 {
			return o, Validation("Invalid min price: %s", q.MinPrice)
		}
		o.PriceMin = v
	}
	if q.MaxPrice != "" {
		v, err := strconv.ParseInt(q.MaxPrice, 10, 64)
		if err != nil || v < 0 {
			return o, Validation("Invalid max price: %s", q.MaxPrice)
		}
		o.PriceMax = v
	}
	if o.PriceMin > o.PriceMax {
		return o, Validation("Min price must not exceed max price")
	}

	if q.InStock != "" {
		v, err := strconv.ParseBool(q.InStock)
		if err != nil {
			return o, Validation("Invalid in_stock: %s", q.InStock)
		}
		o.InStockOnly = v
	}
	return o, nil
}

// List 按条件筛选排序
func (s *ProductService) List(o catalog.Options) []*product.Product {
	return s.store.Filter(o)
}

// All 目录顺序的全部商品
func (s *ProductService) All() []*product.Product {
	return s.store.All()
}

// GetByID 不存在返回 NotFound
func (s *ProductService) GetByID(id string) (*product.Product, error) {
	p := s.store.GetByID(id)
	if p == nil {
		return nil, NotFound("Product not found")
	}
	return p, nil
}

// Lookup 购物车恢复时使用的解析函数
func (s *ProductService) Lookup(id string) *product.Product {
	return s.store.GetByID(id)
}

// Detail 商品详情页
func (s *ProductService) Detail(id string) (*ProductDetail, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: p, Related: s.store.Related(p)}, nil
}

func (s *ProductService) BestSellers() []*product.Product {
	return s.store.BestSellers()
}

func (s *ProductService) NewArrivals() []*product.Product {
	return s.store.NewArrivals()
}

// Compare 生成对比表，category 为空时默认 laptop；重复、超出 4 个或跨分类的商品被忽略
func (s *ProductService) Compare(category string, ids []string) (*catalog.Table, error) {
	c := product.CategoryLaptop
	if category != "" {
		c = product.Category(category)
		if !c.Valid() {
			return nil, Validation("Invalid category: %s", category)
		}
	}
	sel := catalog.NewSelection(c)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		p := s.store.GetByID(id)
		if p == nil {
			return nil, NotFound("Product not found: " + id)
		}
		sel.Add(p)
	}
	t, err := sel.Table()
	if errors.Is(err, catalog.ErrTooFewToCompare) {
		return nil, Validation("Select at least %d products of the same category to compare", catalog.MinCompare)
	}
	return t, err
}

// Add 后台新增商品（仅内存）
func (s *ProductService) Add(p *product.Product) (*product.Product, error) {
	added, err := s.store.Add(p)
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateID) {
			return nil, Conflict("Product id already exists")
		}
		return nil, Validation("%s", err.Error())
	}
	zap.L().Info("product added", zap.String("product_id", added.ID))
	return added, nil
}

// Delete 后台删除商品（仅内存）
func (s *ProductService) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return NotFound("Product not found")
		}
		return err
	}
	zap.L().Info("product deleted", zap.String("product_id", id))
	return nil
}

// Count 目录中的商品数
func (s *ProductService) Count() int {
	return s.store.Len()
}

// SeedDatabase 把内置目录写入数据库，已存在的记录被覆盖
func (s *ProductService) SeedDatabase(ctx context.Context) (int, error) {
	seed := catalog.Seed()
	for _, p := range seed {
		if err := s.repo.Upsert(ctx, p); err != nil {
			return 0, errors.Wrapf(err, "upsert product %s", p.ID)
		}
	}
	return len(seed), nil
}
