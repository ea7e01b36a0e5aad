package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/booking"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/customer"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/issue"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/warranty"
	"github.com/vanshrane27/electrohub-showcase/internal/support"
)

// 回调支持的动作
const (
	ActionCreateWarrantyIssue = "create_warranty_issue"
	ActionBooking             = "booking"
	ActionOrderIssue          = "order_issue"
)

type warrantyPayload struct {
	CustomerID    string `json:"customer_id"`
	ProductName   string `json:"product_name"`
	SerialNumber  string `json:"serial_number"`
	WarrantyStart string `json:"warranty_start"`
	WarrantyEnd   string `json:"warranty_end"`
}

type bookingPayload struct {
	CustomerID    string `json:"customer_id"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
}

type orderIssuePayload struct {
	CustomerID  string `json:"customer_id"`
	Description string `json:"description"`
}

// CallbackService 处理 AI 助手的回调动作
type CallbackService struct {
	customers customer.Repository
	issues    issue.Repository
	warranty  warranty.Repository
	bookings  booking.Repository
}

// NewCallbackService 创建回调服务
func NewCallbackService(customers customer.Repository, issues issue.Repository,
	warranties warranty.Repository, bookings booking.Repository) *CallbackService {
	return &CallbackService{customers: customers, issues: issues, warranty: warranties, bookings: bookings}
}

// Handle 按 action 分发，返回写入记录的 id；附带工单写入失败时省略 issue_id
func (s *CallbackService) Handle(ctx context.Context, action string, payload json.RawMessage) (map[string]string, error) {
	if strings.TrimSpace(action) == "" {
		return nil, Validation("Missing required field: action")
	}
	if len(payload) == 0 || string(payload) == "null" {
		return nil, Validation("Missing required field: payload")
	}
	zap.L().Info("ai callback", zap.String("action", action))

	switch action {
	case ActionCreateWarrantyIssue:
		var p warrantyPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, Validation("Invalid payload")
		}
		return s.createWarrantyIssue(ctx, p)
	case ActionBooking:
		var p bookingPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, Validation("Invalid payload")
		}
		return s.createBooking(ctx, p)
	case ActionOrderIssue:
		var p orderIssuePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, Validation("Invalid payload")
		}
		return s.createOrderIssue(ctx, p)
	}
	return nil, Validation("Unknown action: %s. Valid actions: %s, %s, %s",
		action, ActionCreateWarrantyIssue, ActionBooking, ActionOrderIssue)
}

func (s *CallbackService) createWarrantyIssue(ctx context.Context, p warrantyPayload) (map[string]string, error) {
	if len(support.AbsentFields(
		[2]string{"customer_id", p.CustomerID},
		[2]string{"product_name", p.ProductName},
		[2]string{"serial_number", p.SerialNumber},
		[2]string{"warranty_start", p.WarrantyStart},
		[2]string{"warranty_end", p.WarrantyEnd},
	)) > 0 {
		return nil, Validation("Missing warranty fields: customer_id, product_name, serial_number, warranty_start, warranty_end")
	}
	if !support.ValidDate(p.WarrantyStart) || !support.ValidDate(p.WarrantyEnd) {
		return nil, Validation("Invalid date format. Use YYYY-MM-DD")
	}
	if err := requireCustomer(ctx, s.customers, p.CustomerID); err != nil {
		return nil, err
	}

	w := &warranty.Warranty{
		ID:            uuid.NewString(),
		CustomerID:    p.CustomerID,
		ProductName:   support.SanitizeText(p.ProductName),
		SerialNumber:  support.SanitizeText(p.SerialNumber),
		WarrantyStart: p.WarrantyStart,
		WarrantyEnd:   p.WarrantyEnd,
	}
	if err := s.warranty.Create(ctx, w); err != nil {
		zap.L().Error("create warranty failed", zap.String("customer_id", p.CustomerID), zap.Error(err))
		return nil, Persistence("Failed to create warranty record", err)
	}

	data := map[string]string{"warranty_id": w.ID}
	desc := fmt.Sprintf("Warranty registration for %s (SN: %s)", w.ProductName, w.SerialNumber)
	if id, ok := s.followUpIssue(ctx, p.CustomerID, issue.CategoryWarranty, desc); ok {
		data["issue_id"] = id
	}
	return data, nil
}

func (s *CallbackService) createBooking(ctx context.Context, p bookingPayload) (map[string]string, error) {
	if len(support.AbsentFields(
		[2]string{"customer_id", p.CustomerID},
		[2]string{"preferred_date", p.PreferredDate},
		[2]string{"preferred_time", p.PreferredTime},
	)) > 0 {
		return nil, Validation("Missing booking fields: customer_id, preferred_date, preferred_time")
	}
	if !support.ValidDate(p.PreferredDate) {
		return nil, Validation("Invalid date format. Use YYYY-MM-DD")
	}
	if err := requireCustomer(ctx, s.customers, p.CustomerID); err != nil {
		return nil, err
	}

	b := &booking.Booking{
		ID:            uuid.NewString(),
		CustomerID:    p.CustomerID,
		PreferredDate: p.PreferredDate,
		PreferredTime: support.SanitizeText(p.PreferredTime),
		Status:        booking.StatusPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		zap.L().Error("create booking failed", zap.String("customer_id", p.CustomerID), zap.Error(err))
		return nil, Persistence("Failed to create booking", err)
	}

	data := map[string]string{"booking_id": b.ID}
	desc := fmt.Sprintf("Service booking for %s at %s", b.PreferredDate, b.PreferredTime)
	if id, ok := s.followUpIssue(ctx, p.CustomerID, issue.CategoryBooking, desc); ok {
		data["issue_id"] = id
	}
	return data, nil
}

func (s *CallbackService) createOrderIssue(ctx context.Context, p orderIssuePayload) (map[string]string, error) {
	if len(support.AbsentFields(
		[2]string{"customer_id", p.CustomerID},
		[2]string{"description", p.Description},
	)) > 0 {
		return nil, Validation("Missing order issue fields: customer_id, description")
	}
	if err := requireCustomer(ctx, s.customers, p.CustomerID); err != nil {
		return nil, err
	}

	it := &issue.Issue{
		ID:          uuid.NewString(),
		CustomerID:  p.CustomerID,
		Category:    issue.CategoryOrder,
		Description: support.SanitizeText(p.Description),
		Status:      issue.StatusOpen,
	}
	if err := s.issues.Create(ctx, it); err != nil {
		zap.L().Error("create order issue failed", zap.String("customer_id", p.CustomerID), zap.Error(err))
		return nil, Persistence("Failed to create order issue", err)
	}
	return map[string]string{"issue_id": it.ID}, nil
}

// followUpIssue 主记录写入后补一条工单，失败只记日志
func (s *CallbackService) followUpIssue(ctx context.Context, customerID string, c issue.Category, desc string) (string, bool) {
	it := &issue.Issue{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		Category:    c,
		Description: desc,
		Status:      issue.StatusOpen,
	}
	if err := s.issues.Create(ctx, it); err != nil {
		zap.L().Warn("create follow-up issue failed",
			zap.String("customer_id", customerID),
			zap.String("category", string(c)),
			zap.Error(err))
		return "", false
	}
	return it.ID, true
}
