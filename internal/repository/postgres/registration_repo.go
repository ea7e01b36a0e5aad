package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/registration"
)

type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepository 创建保修登记仓储
func NewRegistrationRepository(db *gorm.DB) registration.Repository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *registration.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// LatestBySerial 同一序列号可能多次登记，取最近一次
func (r *registrationRepo) LatestBySerial(ctx context.Context, serial string) (*registration.Registration, error) {
	var reg registration.Registration
	err := r.db.WithContext(ctx).
		Where("serial_number = ?", serial).
		Order("registered_at DESC").
		First(&reg).Error
	return maybe(&reg, err)
}

func (r *registrationRepo) ListAll(ctx context.Context) ([]*registration.Registration, error) {
	var list []*registration.Registration
	if err := r.db.WithContext(ctx).Order("registered_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
