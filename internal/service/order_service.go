package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
)

// recentOrderLimit 后台订单列表条数
const recentOrderLimit = 100

// OrderService 用于后台订单查询和用户的订单历史
type OrderService struct {
	repo order.Repository
}

// NewOrderService 创建订单服务
func NewOrderService(repo order.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// ListRecent 查询最新的订单记录
func (s *OrderService) ListRecent(ctx context.Context) ([]*order.Order, error) {
	list, err := s.repo.ListRecent(ctx, recentOrderLimit)
	if err != nil {
		return nil, Persistence("Failed to load orders", err)
	}
	return list, nil
}

// ListByUser 某个用户的订单
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, Persistence("Failed to load orders", err)
	}
	return list, nil
}

// Accept 后台接单
func (s *OrderService) Accept(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.repo.UpdateStatus(ctx, id, order.StatusAccepted)
	if err != nil {
		return nil, Persistence("Failed to update order", err)
	}
	if o == nil {
		return nil, NotFound("Order not found")
	}
	zap.L().Info("order accepted", zap.String("order_number", o.OrderNumber))
	return o, nil
}
