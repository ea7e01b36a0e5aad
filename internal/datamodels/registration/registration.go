package registration

import (
	"context"
	"time"
)

// Registration 支持页面上用户自助登记的保修，保修期为购买日起一年
type Registration struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SerialNumber string    `gorm:"size:128;index;not null" json:"serial_number"`
	PurchaseDate string    `gorm:"size:10;not null" json:"purchase_date"`
	Name         string    `gorm:"size:128" json:"name"`
	Email        string    `gorm:"size:128" json:"email"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

// TableName 与客服系统的 warranty 表区分
func (Registration) TableName() string {
	return "warranties"
}

// Repository 登记仓储，LatestBySerial 查不到时返回 nil, nil
type Repository interface {
	Create(ctx context.Context, r *Registration) error
	LatestBySerial(ctx context.Context, serial string) (*Registration, error)
	ListAll(ctx context.Context) ([]*Registration, error)
}
