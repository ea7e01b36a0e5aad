package catalog

import (
	"github.com/pkg/errors"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
)

const (
	MinCompare = 2
	MaxCompare = 4
	// 对比表里每个商品展示的卖点数量
	compareFeatures = 4
)

// ErrTooFewToCompare 选中商品不足两个
var ErrTooFewToCompare = errors.New("select at least 2 products to compare")

// Selection 对比选择，只允许同一分类，最多 4 个，不重复
type Selection struct {
	category product.Category
	items    []*product.Product
}

// NewSelection 创建指定分类的空选择
func NewSelection(category product.Category) *Selection {
	return &Selection{category: category}
}

func (s *Selection) Category() product.Category { return s.category }

func (s *Selection) Products() []*product.Product {
	out := make([]*product.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Selection) Len() int { return len(s.items) }

// Full 已达上限
func (s *Selection) Full() bool { return len(s.items) >= MaxCompare }

// Contains 是否已选中
func (s *Selection) Contains(id string) bool {
	for _, p := range s.items {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Add 满员、重复或跨分类时静默忽略，返回是否真正加入
func (s *Selection) Add(p *product.Product) bool {
	if p == nil || s.Full() || p.Category != s.category || s.Contains(p.ID) {
		return false
	}
	s.items = append(s.items, p)
	return true
}

// Remove 移除指定商品
func (s *Selection) Remove(id string) {
	for i, p := range s.items {
		if p.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear 清空
func (s *Selection) Clear() {
	s.items = nil
}

// SetCategory 切换分类会清空已选商品
func (s *Selection) SetCategory(c product.Category) {
	if c == s.category {
		return
	}
	s.category = c
	s.Clear()
}

// Cell 对比表单元格，Present 为 false 表示该商品没有此项规格
type Cell struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// Row 一个规格项在各商品上的取值
type Row struct {
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// Table 对比表：列为商品，行为规格 label 的并集（按首次出现顺序）
type Table struct {
	Category product.Category   `json:"category"`
	Products []*product.Product `json:"products"`
	Rows     []Row              `json:"rows"`
	Features [][]string         `json:"features"`
}

// Table 生成对比表
func (s *Selection) Table() (*Table, error) {
	if len(s.items) < MinCompare {
		return nil, ErrTooFewToCompare
	}
	labels := SpecLabels(s.items)

	t := &Table{
		Category: s.category,
		Products: s.Products(),
		Rows:     make([]Row, 0, len(labels)),
		Features: make([][]string, 0, len(s.items)),
	}
	for _, label := range labels {
		row := Row{Label: label, Cells: make([]Cell, 0, len(s.items))}
		for _, p := range s.items {
			v, ok := p.SpecValue(label)
			row.Cells = append(row.Cells, Cell{Value: v, Present: ok})
		}
		t.Rows = append(t.Rows, row)
	}
	for _, p := range s.items {
		n := len(p.Features)
		if n > compareFeatures {
			n = compareFeatures
		}
		t.Features = append(t.Features, append([]string(nil), p.Features[:n]...))
	}
	return t, nil
}

// SpecLabels 规格 label 并集，按首次出现顺序
func SpecLabels(products []*product.Product) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, p := range products {
		for _, sp := range p.Specs {
			if _, ok := seen[sp.Label]; ok {
				continue
			}
			seen[sp.Label] = struct{}{}
			labels = append(labels, sp.Label)
		}
	}
	return labels
}
