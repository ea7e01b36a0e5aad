package issue

import (
	"context"
	"time"
)

// Category 工单分类
type Category string

const (
	CategoryWarranty Category = "warranty"
	CategoryBooking  Category = "booking"
	CategoryOrder    Category = "order"
	CategoryGeneral  Category = "general"
)

// Valid 是否为已知分类
func (c Category) Valid() bool {
	switch c {
	case CategoryWarranty, CategoryBooking, CategoryOrder, CategoryGeneral:
		return true
	}
	return false
}

// Status 工单状态
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Valid 是否为已知状态
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Issue 客服工单
type Issue struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CustomerID  string    `gorm:"index;size:36;not null" json:"customer_id"`
	Category    Category  `gorm:"size:16;index" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Status      Status    `gorm:"size:16;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository 工单仓储
type Repository interface {
	Create(ctx context.Context, i *Issue) error
	ListAll(ctx context.Context) ([]*Issue, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Issue, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Issue, error)
}
