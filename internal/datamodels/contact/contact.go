package contact

import (
	"context"
	"time"
)

// StatusNew 新提交的表单
const StatusNew = "New"

// Form 支持页面的联系表单
type Form struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FirstName string    `gorm:"size:128" json:"first_name"`
	LastName  string    `gorm:"size:128" json:"last_name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"size:16;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 表名
func (Form) TableName() string {
	return "contact_forms"
}

// Repository 联系表单仓储
type Repository interface {
	Create(ctx context.Context, f *Form) error
	ListAll(ctx context.Context) ([]*Form, error)
}
