package customer

import (
	"context"
	"time"
)

// HistoryEntry 客户联系记录
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

const (
	HistoryInitialContact = "initial_contact"
	HistoryContact        = "contact"
)

// Customer 客服系统中的客户
type Customer struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	FirstName     string         `gorm:"size:128;not null" json:"first_name"`
	LastName      string         `gorm:"size:128;not null" json:"last_name"`
	Phone         string         `gorm:"size:32;index" json:"phone"`
	LatestMessage *string        `gorm:"type:text" json:"latest_message"`
	History       []HistoryEntry `gorm:"serializer:json" json:"history"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Repository 客户仓储，GetByID/GetByPhone 查不到时返回 nil, nil
type Repository interface {
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	UpdateLatestMessage(ctx context.Context, id, message string) error
	ListAll(ctx context.Context) ([]*Customer, error)
}
