package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/contact"
)

type contactRepo struct {
	db *gorm.DB
}

// NewContactRepository 创建联系表单仓储
func NewContactRepository(db *gorm.DB) contact.Repository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, f *contact.Form) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *contactRepo) ListAll(ctx context.Context) ([]*contact.Form, error) {
	var list []*contact.Form
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
