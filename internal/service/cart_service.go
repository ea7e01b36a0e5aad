package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/cart"
	"github.com/vanshrane27/electrohub-showcase/internal/pricing"
)

// CartView 购物车及结算金额
type CartView struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Summary    pricing.Summary `json:"summary"`
	Display    pricing.Display `json:"display"`
}

// CartService 按会话打开购物车
type CartService struct {
	storage  cart.Storage
	products *ProductService
}

// NewCartService 创建购物车服务
func NewCartService(storage cart.Storage, products *ProductService) *CartService {
	return &CartService{storage: storage, products: products}
}

// Open 恢复会话的购物车
func (s *CartService) Open(ctx context.Context, sessionID string) (*cart.Store, error) {
	c, err := cart.Open(ctx, s.storage, sessionID, s.products.Lookup)
	if err != nil {
		GetMonitor().RecordRedisError()
		zap.L().Error("open cart failed", zap.String("session", sessionID), zap.Error(err))
		return nil, Persistence("Failed to load cart", err)
	}
	return c, nil
}

// Add 加入商品，商品不存在返回 NotFound
func (s *CartService) Add(ctx context.Context, c *cart.Store, productID string, quantity int) error {
	p, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if err := c.AddToCart(ctx, p, quantity); err != nil {
		return Persistence("Failed to update cart", err)
	}
	return nil
}

// Update 修改数量，非正数移除
func (s *CartService) Update(ctx context.Context, c *cart.Store, productID string, quantity int) error {
	if err := c.UpdateQuantity(ctx, productID, quantity); err != nil {
		return Persistence("Failed to update cart", err)
	}
	return nil
}

// Remove 移除商品
func (s *CartService) Remove(ctx context.Context, c *cart.Store, productID string) error {
	if err := c.RemoveFromCart(ctx, productID); err != nil {
		return Persistence("Failed to update cart", err)
	}
	return nil
}

// Clear 清空
func (s *CartService) Clear(ctx context.Context, c *cart.Store) error {
	if err := c.ClearCart(ctx); err != nil {
		return Persistence("Failed to clear cart", err)
	}
	return nil
}

// View 购物车视图
func View(c *cart.Store) *CartView {
	items := c.Items()
	summary := pricing.Calculate(items)
	return &CartView{
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Summary:    summary,
		Display:    summary.Display(),
	}
}
