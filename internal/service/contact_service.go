package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/contact"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/support"
)

// ContactInput 支持页面的联系表单
type ContactInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// ContactService 联系表单：入库、触发 n8n 外呼、同步表格
type ContactService struct {
	repo      contact.Repository
	publisher mq.Publisher
	webhook   string
	httpc     *http.Client
	clock     Clock
}

// NewContactService 创建联系表单服务，webhook 为空时不触发外呼
func NewContactService(repo contact.Repository, publisher mq.Publisher, webhook string, clock Clock) *ContactService {
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}
	return &ContactService{
		repo:      repo,
		publisher: publisher,
		webhook:   webhook,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		clock:     clock,
	}
}

// Submit 保存表单，外呼与同步失败只记日志
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*contact.Form, error) {
	if missing := support.MissingFields(
		[2]string{"first_name", in.FirstName},
		[2]string{"last_name", in.LastName},
		[2]string{"phone", in.Phone},
		[2]string{"message", in.Message},
	); len(missing) > 0 {
		return nil, Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	phone := support.CleanPhone(strings.TrimSpace(in.Phone))
	if !support.ValidPhone(phone) {
		return nil, Validation("Invalid phone number format. Use E.164 format (e.g., +1234567890)")
	}

	f := &contact.Form{
		ID:        uuid.NewString(),
		FirstName: support.SanitizeText(in.FirstName),
		LastName:  support.SanitizeText(in.LastName),
		Phone:     phone,
		Message:   support.SanitizeText(in.Message),
		Status:    contact.StatusNew,
		CreatedAt: s.clock.now().UTC(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		GetMonitor().RecordDBError()
		zap.L().Error("create contact form failed", zap.Error(err))
		return nil, Persistence("Failed to submit form. Please try again.", err)
	}
	GetMonitor().RecordSupportRequest()

	if err := s.notifyWebhook(ctx, f); err != nil {
		zap.L().Warn("n8n webhook failed, form saved", zap.String("form_id", f.ID), zap.Error(err))
	}

	msg := SyncMessage{Kind: SyncContactForm, Contact: &ContactRow{
		ID:          f.ID,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Phone:       f.Phone,
		Message:     f.Message,
		SubmittedAt: isoTime(f.CreatedAt),
		Status:      f.Status,
	}}
	if err := s.publisher.Publish(ctx, mq.QueueSheetsSync, msg); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("enqueue contact sync failed", zap.String("form_id", f.ID), zap.Error(err))
	}
	return f, nil
}

func (s *ContactService) notifyWebhook(ctx context.Context, f *contact.Form) error {
	if s.webhook == "" {
		return nil
	}
	body, err := json.Marshal(map[string]string{
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"phone":      f.Phone,
		"message":    f.Message,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhook, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "post webhook")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return errors.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}

// List 全部联系表单
func (s *ContactService) List(ctx context.Context) ([]*contact.Form, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, Persistence("Failed to load contact forms", err)
	}
	return list, nil
}
