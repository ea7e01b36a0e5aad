package warranty

import (
	"context"
	"time"
)

// Warranty 客服系统登记的保修记录，日期格式 YYYY-MM-DD
type Warranty struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	CustomerID    string    `gorm:"index;size:36;not null" json:"customer_id"`
	ProductName   string    `gorm:"size:256" json:"product_name"`
	SerialNumber  string    `gorm:"size:128;index" json:"serial_number"`
	WarrantyStart string    `gorm:"size:10" json:"warranty_start"`
	WarrantyEnd   string    `gorm:"size:10" json:"warranty_end"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName 沿用客服系统的表名
func (Warranty) TableName() string {
	return "warranty"
}

// Repository 保修仓储，GetBySerial 查不到时返回 nil, nil
type Repository interface {
	Create(ctx context.Context, w *Warranty) error
	GetBySerial(ctx context.Context, serial string) (*Warranty, error)
	ListAll(ctx context.Context) ([]*Warranty, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Warranty, error)
}
