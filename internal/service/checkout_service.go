package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/cart"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/pricing"
	"github.com/vanshrane27/electrohub-showcase/internal/support"
)

var (
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
	cardPattern    = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern  = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern     = regexp.MustCompile(`^\d{3,4}$`)
)

// CheckoutForm 结算表单，卡信息只校验不保存
type CheckoutForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pincode    string `json:"pincode"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Receipt 下单成功的回执
type Receipt struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Items       []order.Item    `json:"items"`
	Summary     pricing.Summary `json:"summary"`
	Display     pricing.Display `json:"display"`
}

// OrderPlacedEvent 投递到 order_placed 队列
type OrderPlacedEvent struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email"`
	Items       int    `json:"items"`
	Total       string `json:"total"`
	PlacedAt    string `json:"placed_at"`
}

// CheckoutService 校验表单、落单、清空购物车
type CheckoutService struct {
	orders    order.Repository
	publisher mq.Publisher
	clock     Clock
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(orders order.Repository, publisher mq.Publisher, clock Clock) *CheckoutService {
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}
	return &CheckoutService{orders: orders, publisher: publisher, clock: clock}
}

// Validate 校验收货与卡信息
func (f CheckoutForm) Validate() error {
	if missing := support.MissingFields(
		[2]string{"name", f.Name},
		[2]string{"email", f.Email},
		[2]string{"phone", f.Phone},
		[2]string{"address", f.Address},
		[2]string{"city", f.City},
		[2]string{"state", f.State},
		[2]string{"pincode", f.Pincode},
		[2]string{"card_number", f.CardNumber},
		[2]string{"expiry", f.Expiry},
		[2]string{"cvv", f.CVV},
	); len(missing) > 0 {
		return Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if !support.ValidEmail(strings.TrimSpace(f.Email)) {
		return Validation("Invalid email address")
	}
	if !pincodePattern.MatchString(strings.TrimSpace(f.Pincode)) {
		return Validation("Pincode must be 6 digits")
	}
	if !cardPattern.MatchString(strings.ReplaceAll(f.CardNumber, " ", "")) {
		return Validation("Invalid card number")
	}
	if !expiryPattern.MatchString(strings.TrimSpace(f.Expiry)) {
		return Validation("Expiry must be MM/YY")
	}
	if !cvvPattern.MatchString(strings.TrimSpace(f.CVV)) {
		return Validation("Invalid CVV")
	}
	return nil
}

// orderNumber ORD- 加毫秒时间戳的 36 进制和 4 位随机串
func (s *CheckoutService) orderNumber() string {
	ts := strconv.FormatInt(s.clock.now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return "ORD-" + strings.ToUpper(ts+suffix)
}

// PlaceOrder 下单；userID 为空表示游客
func (s *CheckoutService) PlaceOrder(ctx context.Context, c *cart.Store, userID string, f CheckoutForm) (rc *Receipt, err error) {
	defer func() { GetMonitor().RecordCheckout(err == nil) }()

	if err := f.Validate(); err != nil {
		return nil, err
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, Validation("Your cart is empty")
	}

	summary := pricing.Calculate(items)
	o := &order.Order{
		ID:          uuid.NewString(),
		OrderNumber: s.orderNumber(),
		UserID:      userID,
		Shipping: order.Shipping{
			Name:    support.SanitizeText(f.Name),
			Email:   strings.TrimSpace(f.Email),
			Phone:   support.CleanPhone(f.Phone),
			Address: support.SanitizeText(f.Address),
			City:    support.SanitizeText(f.City),
			State:   support.SanitizeText(f.State),
			Pincode: strings.TrimSpace(f.Pincode),
		},
		Items:     make([]order.Item, 0, len(items)),
		Subtotal:  summary.Subtotal,
		Tax:       summary.Tax,
		Total:     summary.Total,
		Status:    order.StatusPending,
		CreatedAt: s.clock.now(),
	}
	for _, it := range items {
		o.Items = append(o.Items, order.Item{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Price:     it.Product.Price,
			Quantity:  it.Quantity,
		})
	}

	if err := s.orders.Create(ctx, o); err != nil {
		GetMonitor().RecordDBError()
		zap.L().Error("create order failed", zap.String("order_number", o.OrderNumber), zap.Error(err))
		return nil, Persistence("Failed to place order. Please try again.", err)
	}
	if err := c.ClearCart(ctx); err != nil {
		zap.L().Warn("clear cart after order failed", zap.String("order_number", o.OrderNumber), zap.Error(err))
	}

	evt := OrderPlacedEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Email:       o.Shipping.Email,
		Items:       o.ItemCount(),
		Total:       o.Total.StringFixed(2),
		PlacedAt:    isoTime(o.CreatedAt),
	}
	if err := s.publisher.Publish(ctx, mq.QueueOrderPlaced, evt); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("publish order_placed failed", zap.String("order_number", o.OrderNumber), zap.Error(err))
	}

	zap.L().Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.Int("items", o.ItemCount()),
		zap.String("total", o.Total.StringFixed(2)))
	return &Receipt{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Items:       o.Items,
		Summary:     summary,
		Display:     summary.Display(),
	}, nil
}
