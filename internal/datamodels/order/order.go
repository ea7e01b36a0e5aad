package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
)

// Item 下单时的商品快照
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Shipping 收货信息
type Shipping struct {
	Name    string `gorm:"size:128" json:"name"`
	Email   string `gorm:"size:128" json:"email"`
	Phone   string `gorm:"size:32" json:"phone"`
	Address string `gorm:"size:512" json:"address"`
	City    string `gorm:"size:64" json:"city"`
	State   string `gorm:"size:64" json:"state"`
	Pincode string `gorm:"size:16" json:"pincode"`
}

// Order 订单模型
type Order struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber string          `gorm:"uniqueIndex;size:32" json:"order_number"`
	UserID      string          `gorm:"index;size:36" json:"user_id,omitempty"`
	Shipping    Shipping        `gorm:"embedded;embeddedPrefix:ship_" json:"shipping"`
	Items       []Item          `gorm:"serializer:json" json:"items"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(14,2)" json:"subtotal"`
	Tax         decimal.Decimal `gorm:"type:decimal(14,2)" json:"tax"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2)" json:"total"`
	Status      Status          `gorm:"size:16;index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"-"`
}

// ItemCount 订单内商品件数
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListRecent(ctx context.Context, limit int) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	SumTotal(ctx context.Context) (decimal.Decimal, error)
}
