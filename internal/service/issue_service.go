package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/customer"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/issue"
	"github.com/vanshrane27/electrohub-showcase/internal/support"
)

// IssueInput 新建工单请求，Category 为空时按关键字识别
type IssueInput struct {
	CustomerID string `json:"customer_id"`
	Message    string `json:"message"`
	Category   string `json:"category"`
}

// IssueResult 新建工单结果
type IssueResult struct {
	IssueID          string         `json:"issue_id"`
	Category         issue.Category `json:"category"`
	DetectedCategory issue.Category `json:"detected_category"`
}

// IssueService 客服工单
type IssueService struct {
	issues    issue.Repository
	customers customer.Repository
}

// NewIssueService 创建工单服务
func NewIssueService(issues issue.Repository, customers customer.Repository) *IssueService {
	return &IssueService{issues: issues, customers: customers}
}

// requireCustomer 客户必须存在
func requireCustomer(ctx context.Context, repo customer.Repository, id string) error {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		zap.L().Error("fetch customer failed", zap.String("customer_id", id), zap.Error(err))
		return Persistence("Database error while fetching customer", err)
	}
	if c == nil {
		return NotFound("Customer not found")
	}
	return nil
}

// Create 创建工单并刷新客户的最新留言
func (s *IssueService) Create(ctx context.Context, in IssueInput) (*IssueResult, error) {
	if in.CustomerID == "" {
		return nil, Validation("Missing required field: customer_id")
	}
	if in.Message == "" {
		return nil, Validation("Missing required field: message")
	}
	if err := requireCustomer(ctx, s.customers, in.CustomerID); err != nil {
		return nil, err
	}

	message := support.SanitizeText(in.Message)
	category := issue.Category(strings.TrimSpace(in.Category))
	if !category.Valid() {
		category = support.DetectCategory(message)
	}

	it := &issue.Issue{
		ID:          uuid.NewString(),
		CustomerID:  in.CustomerID,
		Category:    category,
		Description: message,
		Status:      issue.StatusOpen,
	}
	if err := s.issues.Create(ctx, it); err != nil {
		zap.L().Error("create issue failed", zap.String("customer_id", in.CustomerID), zap.Error(err))
		return nil, Persistence("Failed to create issue", err)
	}
	if err := s.customers.UpdateLatestMessage(ctx, in.CustomerID, message); err != nil {
		zap.L().Warn("update latest message failed", zap.String("customer_id", in.CustomerID), zap.Error(err))
	}
	return &IssueResult{IssueID: it.ID, Category: it.Category, DetectedCategory: category}, nil
}

// List 全部工单
func (s *IssueService) List(ctx context.Context) ([]*issue.Issue, error) {
	list, err := s.issues.ListAll(ctx)
	if err != nil {
		return nil, Persistence("Failed to load issues", err)
	}
	return list, nil
}

// ListByCustomer 客户名下的工单
func (s *IssueService) ListByCustomer(ctx context.Context, customerID string) ([]*issue.Issue, error) {
	list, err := s.issues.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, Persistence("Failed to load issues", err)
	}
	return list, nil
}

// UpdateStatus 修改工单状态
func (s *IssueService) UpdateStatus(ctx context.Context, id, status string) (*issue.Issue, error) {
	st := issue.Status(status)
	if !st.Valid() {
		return nil, Validation("Invalid status: %s", status)
	}
	it, err := s.issues.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, Persistence("Failed to update issue", err)
	}
	if it == nil {
		return nil, NotFound("Issue not found")
	}
	return it, nil
}
