package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
	"github.com/vanshrane27/electrohub-showcase/internal/pricing"
)

// Stats 后台首页统计
type Stats struct {
	Products       int             `json:"products"`
	PendingOrders  int64           `json:"pending_orders"`
	AcceptedOrders int64           `json:"accepted_orders"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueDisplay string          `json:"revenue_display"`
}

// DashboardService 汇总后台统计
type DashboardService struct {
	products *ProductService
	orders   order.Repository
}

// NewDashboardService 创建统计服务
func NewDashboardService(products *ProductService, orders order.Repository) *DashboardService {
	return &DashboardService{products: products, orders: orders}
}

// Stats 几个查询并发执行，任一失败即返回
func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{Products: s.products.Count()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.orders.CountByStatus(gctx, order.StatusPending)
		st.PendingOrders = n
		return err
	})
	g.Go(func() error {
		n, err := s.orders.CountByStatus(gctx, order.StatusAccepted)
		st.AcceptedOrders = n
		return err
	})
	g.Go(func() error {
		v, err := s.orders.SumTotal(gctx)
		st.Revenue = v
		return err
	})
	if err := g.Wait(); err != nil {
		GetMonitor().RecordDBError()
		return nil, Persistence("Failed to load stats", err)
	}
	st.RevenueDisplay = pricing.FormatINR(st.Revenue)
	return st, nil
}
