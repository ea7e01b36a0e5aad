package catalog

import (
	"sort"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
)

// SortKey 列表排序方式
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// CategoryAll 不按分类过滤
const CategoryAll = "all"

const (
	DefaultPriceMin int64 = 0
	DefaultPriceMax int64 = 300000
)

// Options 筛选条件
type Options struct {
	Category    string // 分类或 "all"
	PriceMin    int64
	PriceMax    int64
	InStockOnly bool
	Sort        SortKey
}

// DefaultOptions 前台初始筛选条件
func DefaultOptions() Options {
	return Options{
		Category: CategoryAll,
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		Sort:     SortFeatured,
	}
}

// ParseSort 解析排序参数，空串视为 featured
func ParseSort(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case "":
		return SortFeatured, true
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return k, true
	}
	return "", false
}

// ParseCategory 解析分类参数，空串视为 all
func ParseCategory(s string) (string, bool) {
	if s == "" || s == CategoryAll {
		return CategoryAll, true
	}
	if product.Category(s).Valid() {
		return s, true
	}
	return "", false
}

// Match 商品是否满足全部筛选条件
func (o Options) Match(p *product.Product) bool {
	if o.Category != "" && o.Category != CategoryAll && string(p.Category) != o.Category {
		return false
	}
	if p.Price < o.PriceMin || p.Price > o.PriceMax {
		return false
	}
	if o.InStockOnly && !p.InStock {
		return false
	}
	return true
}

// Filter 返回满足条件并排好序的新切片，不修改入参
func Filter(products []*product.Product, o Options) []*product.Product {
	out := make([]*product.Product, 0, len(products))
	for _, p := range products {
		if o.Match(p) {
			out = append(out, p)
		}
	}

	switch o.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].IsNew && !out[j].IsNew })
	}
	return out
}
