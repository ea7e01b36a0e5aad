package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/registration"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/warranty"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/support"
)

// 保修查询的提示语
const (
	MsgWarrantyNotFound = "Warranty not found"
	MsgWarrantyActive   = "Warranty is active"
	MsgWarrantyExpired  = "Warranty has expired"
)

// WarrantyStatus 保修查询结果
type WarrantyStatus struct {
	Valid        bool                       `json:"valid"`
	Message      string                     `json:"message"`
	Warranty     *warranty.Warranty         `json:"warranty,omitempty"`
	Registration *registration.Registration `json:"registration,omitempty"`
	Expiry       string                     `json:"expiry,omitempty"`
}

// RegistrationInput 支持页面的保修登记表单
type RegistrationInput struct {
	SerialNumber string `json:"serial_number"`
	PurchaseDate string `json:"purchase_date"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// WarrantyService 保修查询与登记
type WarrantyService struct {
	warranties    warranty.Repository
	registrations registration.Repository
	publisher     mq.Publisher
	clock         Clock
}

// NewWarrantyService 创建保修服务
func NewWarrantyService(warranties warranty.Repository, registrations registration.Repository,
	publisher mq.Publisher, clock Clock) *WarrantyService {
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}
	return &WarrantyService{warranties: warranties, registrations: registrations, publisher: publisher, clock: clock}
}

// today 当天零点，按日期比较
func (s *WarrantyService) today() time.Time {
	y, m, d := s.clock.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// covered 截止日当天仍在保
func (s *WarrantyService) covered(end time.Time) bool {
	return !s.today().After(end)
}

// CheckStatus 先查客服登记的保修，再查用户自助登记（购买日起一年）
func (s *WarrantyService) CheckStatus(ctx context.Context, serial string) (*WarrantyStatus, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, Validation("Please enter a serial number")
	}

	w, err := s.warranties.GetBySerial(ctx, serial)
	if err != nil {
		zap.L().Error("fetch warranty failed", zap.String("serial", serial), zap.Error(err))
		return nil, Persistence("Failed to check warranty status", err)
	}
	if w != nil {
		end, ok := support.ParseDate(w.WarrantyEnd)
		valid := ok && s.covered(end)
		st := &WarrantyStatus{Valid: valid, Warranty: w, Expiry: w.WarrantyEnd, Message: MsgWarrantyExpired}
		if valid {
			st.Message = MsgWarrantyActive
		}
		return st, nil
	}

	reg, err := s.registrations.LatestBySerial(ctx, serial)
	if err != nil {
		zap.L().Error("fetch registration failed", zap.String("serial", serial), zap.Error(err))
		return nil, Persistence("Failed to check warranty status", err)
	}
	if reg == nil {
		return &WarrantyStatus{Valid: false, Message: MsgWarrantyNotFound}, nil
	}
	purchased, ok := support.ParseDate(reg.PurchaseDate)
	if !ok {
		return &WarrantyStatus{Valid: false, Message: MsgWarrantyExpired, Registration: reg}, nil
	}
	expiry := purchased.AddDate(1, 0, 0)
	st := &WarrantyStatus{
		Valid:        s.covered(expiry),
		Registration: reg,
		Expiry:       expiry.Format(support.DateLayout),
		Message:      MsgWarrantyExpired,
	}
	if st.Valid {
		st.Message = MsgWarrantyActive
	}
	return st, nil
}

// Register 保存自助登记并异步同步到表格
func (s *WarrantyService) Register(ctx context.Context, in RegistrationInput) (*registration.Registration, error) {
	if missing := support.MissingFields(
		[2]string{"serial_number", in.SerialNumber},
		[2]string{"purchase_date", in.PurchaseDate},
		[2]string{"name", in.Name},
		[2]string{"email", in.Email},
	); len(missing) > 0 {
		return nil, Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if !support.ValidDate(in.PurchaseDate) {
		return nil, Validation("Invalid date format. Use YYYY-MM-DD")
	}
	email := strings.TrimSpace(in.Email)
	if !support.ValidEmail(email) {
		return nil, Validation("Invalid email address")
	}

	reg := &registration.Registration{
		ID:           uuid.NewString(),
		SerialNumber: support.SanitizeText(in.SerialNumber),
		PurchaseDate: in.PurchaseDate,
		Name:         support.SanitizeText(in.Name),
		Email:        email,
		RegisteredAt: s.clock.now().UTC(),
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		GetMonitor().RecordDBError()
		zap.L().Error("create registration failed", zap.String("serial", reg.SerialNumber), zap.Error(err))
		return nil, Persistence("Failed to register warranty", err)
	}
	GetMonitor().RecordSupportRequest()

	msg := SyncMessage{Kind: SyncWarranty, Warranty: &WarrantyRow{
		ID:            reg.ID,
		ProductSerial: reg.SerialNumber,
		PurchaseDate:  reg.PurchaseDate,
		Name:          reg.Name,
		Email:         reg.Email,
		RegisteredAt:  isoTime(reg.RegisteredAt),
	}}
	if err := s.publisher.Publish(ctx, mq.QueueSheetsSync, msg); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("enqueue warranty sync failed", zap.String("registration_id", reg.ID), zap.Error(err))
	}
	return reg, nil
}

// List 客服登记的全部保修
func (s *WarrantyService) List(ctx context.Context) ([]*warranty.Warranty, error) {
	list, err := s.warranties.ListAll(ctx)
	if err != nil {
		return nil, Persistence("Failed to load warranties", err)
	}
	return list, nil
}

// ListByCustomer 客户名下的保修
func (s *WarrantyService) ListByCustomer(ctx context.Context, customerID string) ([]*warranty.Warranty, error) {
	list, err := s.warranties.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, Persistence("Failed to load warranties", err)
	}
	return list, nil
}

// ListRegistrations 自助登记列表
func (s *WarrantyService) ListRegistrations(ctx context.Context) ([]*registration.Registration, error) {
	list, err := s.registrations.ListAll(ctx)
	if err != nil {
		return nil, Persistence("Failed to load registrations", err)
	}
	return list, nil
}
