package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/customer"
	"github.com/vanshrane27/electrohub-showcase/internal/support"
)

// CustomerInput 客户登记请求
type CustomerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// CustomerResult 登记结果
type CustomerResult struct {
	CustomerID string `json:"customer_id"`
	IsNew      bool   `json:"is_new"`
}

// CustomerService 客户登记与查询
type CustomerService struct {
	repo  customer.Repository
	clock Clock
}

// NewCustomerService 创建客户服务
func NewCustomerService(repo customer.Repository, clock Clock) *CustomerService {
	return &CustomerService{repo: repo, clock: clock}
}

// CreateOrUpdate 按手机号查找客户，存在则更新并追加联系记录，否则新建
func (s *CustomerService) CreateOrUpdate(ctx context.Context, in CustomerInput) (*CustomerResult, error) {
	if len(support.AbsentFields(
		[2]string{"first_name", in.FirstName},
		[2]string{"last_name", in.LastName},
		[2]string{"phone", in.Phone},
	)) > 0 {
		return nil, Validation("Missing required fields: first_name, last_name, phone")
	}
	phone := support.CleanPhone(strings.TrimSpace(in.Phone))
	if !support.ValidPhone(phone) {
		return nil, Validation("Invalid phone number format. Use E.164 format (e.g., +1234567890)")
	}

	firstName := support.SanitizeText(in.FirstName)
	lastName := support.SanitizeText(in.LastName)
	message := support.SanitizeText(in.Message)
	now := isoTime(s.clock.now())

	existing, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		zap.L().Error("fetch customer failed", zap.String("phone", phone), zap.Error(err))
		return nil, Persistence("Database error while fetching customer", err)
	}

	if existing != nil {
		existing.FirstName = firstName
		existing.LastName = lastName
		if message != "" {
			existing.LatestMessage = &message
		}
		entry := customer.HistoryEntry{Timestamp: now, Message: message, Type: customer.HistoryContact}
		if entry.Message == "" {
			entry.Message = "No message"
		}
		existing.History = append(existing.History, entry)
		if err := s.repo.Update(ctx, existing); err != nil {
			zap.L().Error("update customer failed", zap.String("customer_id", existing.ID), zap.Error(err))
			return nil, Persistence("Failed to update customer", err)
		}
		return &CustomerResult{CustomerID: existing.ID, IsNew: false}, nil
	}

	c := &customer.Customer{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		History:   []customer.HistoryEntry{},
	}
	if message != "" {
		c.LatestMessage = &message
		c.History = append(c.History, customer.HistoryEntry{
			Timestamp: now,
			Message:   message,
			Type:      customer.HistoryInitialContact,
		})
	}
	if err := s.repo.Create(ctx, c); err != nil {
		zap.L().Error("create customer failed", zap.String("phone", phone), zap.Error(err))
		return nil, Persistence("Failed to create customer", err)
	}
	zap.L().Info("customer created", zap.String("customer_id", c.ID))
	return &CustomerResult{CustomerID: c.ID, IsNew: true}, nil
}

// List 全部客户，新的在前
func (s *CustomerService) List(ctx context.Context) ([]*customer.Customer, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, Persistence("Failed to load customers", err)
	}
	return list, nil
}

// Get 查询单个客户，不存在返回 NotFound
func (s *CustomerService) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, Persistence("Database error while fetching customer", err)
	}
	if c == nil {
		return nil, NotFound("Customer not found")
	}
	return c, nil
}
