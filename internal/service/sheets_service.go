package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// 工作表名称
const (
	SheetWarranties   = "Warranties"
	SheetContactForms = "ContactForms"
	SheetOrders       = "Orders"
)

var (
	warrantyHeaders = []string{"ID", "Serial Number", "Purchase Date", "Name", "Email", "Registered At"}
	contactHeaders  = []string{"ID", "First Name", "Last Name", "Phone", "Message", "Submitted At", "Status"}
	orderHeaders    = []string{"Order ID", "Order Number", "User ID", "Email", "Items", "Total", "Placed At"}
)

// 同步消息类型
const (
	SyncWarranty    = "warranty"
	SyncContactForm = "contact_form"
)

// SheetWriter 表格读写，由 infra/sheets.Client 实现
type SheetWriter interface {
	Append(ctx context.Context, sheet string, rows [][]string) error
	Values(ctx context.Context, sheet string) ([][]string, error)
	EnsureHeaders(ctx context.Context, sheet string, headers []string) error
}

// WarrantyRow 保修登记行
type WarrantyRow struct {
	ID            string `json:"id,omitempty"`
	ProductSerial string `json:"productSerial"`
	PurchaseDate  string `json:"purchaseDate"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	RegisteredAt  string `json:"registeredAt,omitempty"`
}

// ContactRow 联系表单行
type ContactRow struct {
	ID          string `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submittedAt,omitempty"`
	Status      string `json:"status,omitempty"`
}

// SheetData getData 的返回
type SheetData struct {
	Warranties   []WarrantyRow `json:"warranties"`
	ContactForms []ContactRow  `json:"contactForms"`
}

// SyncMessage 投递到 sheets_sync 队列的消息
type SyncMessage struct {
	Kind     string       `json:"kind"`
	Warranty *WarrantyRow `json:"warranty,omitempty"`
	Contact  *ContactRow  `json:"contact,omitempty"`
}

// ErrSheetsNotConfigured 未配置服务账号
var ErrSheetsNotConfigured = errors.New("Google Sheets is not configured")

// SheetsService 把支持页面的提交同步到 Google Sheets
type SheetsService struct {
	client SheetWriter
	clock  Clock
}

// NewSheetsService 创建表格服务，client 为 nil 表示未配置
func NewSheetsService(client SheetWriter, clock Clock) *SheetsService {
	return &SheetsService{client: client, clock: clock}
}

// Enabled 是否可用
func (s *SheetsService) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *SheetsService) ready() error {
	if !s.Enabled() {
		return Persistence(ErrSheetsNotConfigured.Error(), ErrSheetsNotConfigured)
	}
	return nil
}

func (s *SheetsService) timestamp() string {
	return isoTime(s.clock.now())
}

// AddWarranty 追加一行保修登记
func (s *SheetsService) AddWarranty(ctx context.Context, row WarrantyRow) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.client.EnsureHeaders(ctx, SheetWarranties, warrantyHeaders); err != nil {
		return s.fail("ensure warranty sheet", err)
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.RegisteredAt == "" {
		row.RegisteredAt = s.timestamp()
	}
	values := []string{row.ID, row.ProductSerial, row.PurchaseDate, row.Name, row.Email, row.RegisteredAt}
	if err := s.client.Append(ctx, SheetWarranties, [][]string{values}); err != nil {
		return s.fail("append warranty row", err)
	}
	return nil
}

// AddContactForm 追加一行联系表单，状态固定为 New
func (s *SheetsService) AddContactForm(ctx context.Context, row ContactRow) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.client.EnsureHeaders(ctx, SheetContactForms, contactHeaders); err != nil {
		return s.fail("ensure contact sheet", err)
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.SubmittedAt == "" {
		row.SubmittedAt = s.timestamp()
	}
	values := []string{row.ID, row.FirstName, row.LastName, row.Phone, row.Message, row.SubmittedAt, "New"}
	if err := s.client.Append(ctx, SheetContactForms, [][]string{values}); err != nil {
		return s.fail("append contact row", err)
	}
	return nil
}

// AddOrder 追加一行已下单记录
func (s *SheetsService) AddOrder(ctx context.Context, evt OrderPlacedEvent) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.client.EnsureHeaders(ctx, SheetOrders, orderHeaders); err != nil {
		return s.fail("ensure order sheet", err)
	}
	if evt.PlacedAt == "" {
		evt.PlacedAt = s.timestamp()
	}
	values := []string{evt.OrderID, evt.OrderNumber, evt.UserID, evt.Email, strconv.Itoa(evt.Items), evt.Total, evt.PlacedAt}
	if err := s.client.Append(ctx, SheetOrders, [][]string{values}); err != nil {
		return s.fail("append order row", err)
	}
	return nil
}

// GetData 读取两张表，跳过表头
func (s *SheetsService) GetData(ctx context.Context) (*SheetData, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	warranties, err := s.client.Values(ctx, SheetWarranties)
	if err != nil {
		return nil, s.fail("read warranty sheet", err)
	}
	contacts, err := s.client.Values(ctx, SheetContactForms)
	if err != nil {
		return nil, s.fail("read contact sheet", err)
	}

	data := &SheetData{Warranties: []WarrantyRow{}, ContactForms: []ContactRow{}}
	for _, r := range skipHeader(warranties) {
		data.Warranties = append(data.Warranties, WarrantyRow{
			ID:            cell(r, 0),
			ProductSerial: cell(r, 1),
			PurchaseDate:  cell(r, 2),
			Name:          cell(r, 3),
			Email:         cell(r, 4),
			RegisteredAt:  cell(r, 5),
		})
	}
	for _, r := range skipHeader(contacts) {
		status := cell(r, 6)
		if status == "" {
			status = "New"
		}
		data.ContactForms = append(data.ContactForms, ContactRow{
			ID:          cell(r, 0),
			FirstName:   cell(r, 1),
			LastName:    cell(r, 2),
			Phone:       cell(r, 3),
			Message:     cell(r, 4),
			SubmittedAt: cell(r, 5),
			Status:      status,
		})
	}
	return data, nil
}

// Apply 执行一条队列消息，消息格式错误时返回 Validation
func (s *SheetsService) Apply(ctx context.Context, body []byte) error {
	var msg SyncMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return Validation("malformed sync message")
	}
	switch {
	case msg.Kind == SyncWarranty && msg.Warranty != nil:
		return s.AddWarranty(ctx, *msg.Warranty)
	case msg.Kind == SyncContactForm && msg.Contact != nil:
		return s.AddContactForm(ctx, *msg.Contact)
	}
	return Validation("unknown sync message kind %q", msg.Kind)
}

// ApplyOrder 执行一条 order_placed 事件
func (s *SheetsService) ApplyOrder(ctx context.Context, body []byte) error {
	var evt OrderPlacedEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return Validation("malformed order event")
	}
	if evt.OrderID == "" || evt.OrderNumber == "" {
		return Validation("order event without order id")
	}
	return s.AddOrder(ctx, evt)
}

func (s *SheetsService) fail(op string, err error) error {
	GetMonitor().RecordSheetsError()
	zap.L().Error("google sheets call failed", zap.String("op", op), zap.Error(err))
	return Persistence(errors.Wrap(err, op).Error(), err)
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
