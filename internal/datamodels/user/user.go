package user

import (
	"context"
	"time"
)

// User 用户模型
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Name         string    `gorm:"size:128" json:"name"`
	Phone        string    `gorm:"size:32" json:"phone,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Repository 用户仓储接口，GetByEmail 查不到时返回 nil, nil
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	ListAll(ctx context.Context) ([]*User, error)
}
