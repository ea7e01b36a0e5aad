package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/customer"
)

type customerRepo struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepo{db: db}
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	return maybe(&c, err)
}

func (r *customerRepo) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&c).Error
	return maybe(&c, err)
}

func (r *customerRepo) Create(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) Update(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) UpdateLatestMessage(ctx context.Context, id, message string) error {
	return r.db.WithContext(ctx).
		Model(&customer.Customer{}).
		Where("id = ?", id).
		Update("latest_message", message).Error
}

func (r *customerRepo) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	var list []*customer.Customer
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
