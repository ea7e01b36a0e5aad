package booking

import (
	"context"
	"time"
)

// Status 预约状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid 是否为已知状态
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking 上门服务预约
type Booking struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	CustomerID    string    `gorm:"index;size:36;not null" json:"customer_id"`
	PreferredDate string    `gorm:"size:10" json:"preferred_date"`
	PreferredTime string    `gorm:"size:32" json:"preferred_time"`
	Status        Status    `gorm:"size:16;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Repository 预约仓储
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	ListAll(ctx context.Context) ([]*Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
}
