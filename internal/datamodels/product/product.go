package product

import (
	"context"
	"time"
)

// Category 商品分类
type Category string

const (
	CategoryTV         Category = "tv"
	CategoryLaptop     Category = "laptop"
	CategoryPC         Category = "pc"
	CategorySpareParts Category = "spare-parts"
)

// Categories 全部分类，顺序即前台展示顺序
var Categories = []Category{CategoryTV, CategoryLaptop, CategoryPC, CategorySpareParts}

// Valid 是否为已知分类
func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Spec 规格参数（label 在不同商品间可以重复）
type Spec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FAQ 常见问题
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Product 商品模型，价格单位为卢比整数
type Product struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	Position      int       `gorm:"index" json:"-"`
	Name          string    `gorm:"size:128;not null" json:"name"`
	Category      Category  `gorm:"size:32;index" json:"category"`
	Price         int64     `gorm:"not null" json:"price"`
	OriginalPrice *int64    `json:"originalPrice,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	InStock       bool      `json:"inStock"`
	IsNew         bool      `json:"isNew"`
	IsBestSeller  bool      `json:"isBestSeller"`
	Image         string    `gorm:"size:512" json:"image"`
	ShortSpecs    string    `gorm:"size:512" json:"shortSpecs"`
	Features      []string  `gorm:"serializer:json" json:"features"`
	Specs         []Spec    `gorm:"serializer:json" json:"specs"`
	FAQs          []FAQ     `gorm:"serializer:json" json:"faqs"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// SpecValue 按 label 查找规格值
func (p *Product) SpecValue(label string) (string, bool) {
	for _, s := range p.Specs {
		if s.Label == label {
			return s.Value, true
		}
	}
	return "", false
}

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error) // 按 position 排序
	Upsert(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
