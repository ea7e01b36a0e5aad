package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/warranty"
)

type warrantyRepo struct {
	db *gorm.DB
}

// NewWarrantyRepository 创建保修仓储
func NewWarrantyRepository(db *gorm.DB) warranty.Repository {
	return &warrantyRepo{db: db}
}

func (r *warrantyRepo) Create(ctx context.Context, w *warranty.Warranty) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *warrantyRepo) GetBySerial(ctx context.Context, serial string) (*warranty.Warranty, error) {
	var w warranty.Warranty
	err := r.db.WithContext(ctx).
		Where("serial_number = ?", serial).
		Order("created_at DESC").
		First(&w).Error
	return maybe(&w, err)
}

func (r *warrantyRepo) ListAll(ctx context.Context) ([]*warranty.Warranty, error) {
	var list []*warranty.Warranty
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *warrantyRepo) ListByCustomer(ctx context.Context, customerID string) ([]*warranty.Warranty, error) {
	var list []*warranty.Warranty
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
