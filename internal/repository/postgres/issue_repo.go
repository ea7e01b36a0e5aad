package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/issue"
)

type issueRepo struct {
	db *gorm.DB
}

// NewIssueRepository 创建工单仓储
func NewIssueRepository(db *gorm.DB) issue.Repository {
	return &issueRepo{db: db}
}

func (r *issueRepo) Create(ctx context.Context, i *issue.Issue) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *issueRepo) ListAll(ctx context.Context) ([]*issue.Issue, error) {
	var list []*issue.Issue
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *issueRepo) ListByCustomer(ctx context.Context, customerID string) ([]*issue.Issue, error) {
	var list []*issue.Issue
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus 更新状态并返回最新记录，工单不存在时返回 nil, nil
func (r *issueRepo) UpdateStatus(ctx context.Context, id string, status issue.Status) (*issue.Issue, error) {
	return updateStatus[issue.Issue](ctx, r.db, id, status)
}
