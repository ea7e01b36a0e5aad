package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/booking"
)

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepository 创建预约仓储
func NewBookingRepository(db *gorm.DB) booking.Repository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepo) ListAll(ctx context.Context) ([]*booking.Booking, error) {
	var list []*booking.Booking
	if err := r.db.WithContext(ctx).Order("preferred_date ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]*booking.Booking, error) {
	var list []*booking.Booking
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("preferred_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus 更新状态并返回最新记录，预约不存在时返回 nil, nil
func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, status booking.Status) (*booking.Booking, error) {
	return updateStatus[booking.Booking](ctx, r.db, id, status)
}
