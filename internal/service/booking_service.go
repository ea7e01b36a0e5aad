package service

import (
	"context"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/booking"
)

// BookingService 后台预约管理
type BookingService struct {
	repo booking.Repository
}

// NewBookingService 创建预约服务
func NewBookingService(repo booking.Repository) *BookingService {
	return &BookingService{repo: repo}
}

func (s *BookingService) List(ctx context.Context) ([]*booking.Booking, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, Persistence("Failed to load bookings", err)
	}
	return list, nil
}

func (s *BookingService) ListByCustomer(ctx context.Context, customerID string) ([]*booking.Booking, error) {
	list, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, Persistence("Failed to load bookings", err)
	}
	return list, nil
}

// UpdateStatus 修改预约状态
func (s *BookingService) UpdateStatus(ctx context.Context, id, status string) (*booking.Booking, error) {
	st := booking.Status(status)
	if !st.Valid() {
		return nil, Validation("Invalid status: %s", status)
	}
	b, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, Persistence("Failed to update booking", err)
	}
	if b == nil {
		return nil, NotFound("Booking not found")
	}
	return b, nil
}
