package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/booking"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/contact"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/customer"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/issue"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/registration"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/user"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/warranty"
)

var errDB = errors.New("db down")

type fakeCustomers struct {
	mu        sync.Mutex
	byID      map[string]*customer.Customer
	failGet   bool
	failWrite bool
	failMsg   bool
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{byID: map[string]*customer.Customer{}}
}

func (f *fakeCustomers) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errDB
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errDB
	}
	for _, c := range f.byID {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) Create(ctx context.Context, c *customer.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errDB
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCustomers) Update(ctx context.Context, c *customer.Customer) error {
	return f.Create(ctx, c)
}

func (f *fakeCustomers) UpdateLatestMessage(ctx context.Context, id, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMsg {
		return errDB
	}
	if c, ok := f.byID[id]; ok {
		c.LatestMessage = &message
	}
	return nil
}

func (f *fakeCustomers) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*customer.Customer
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

type fakeIssues struct {
	mu     sync.Mutex
	list   []*issue.Issue
	failed bool
}

func (f *fakeIssues) Create(ctx context.Context, i *issue.Issue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return errDB
	}
	f.list = append(f.list, i)
	return nil
}

func (f *fakeIssues) ListAll(ctx context.Context) ([]*issue.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*issue.Issue(nil), f.list...), nil
}

func (f *fakeIssues) ListByCustomer(ctx context.Context, customerID string) ([]*issue.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*issue.Issue
	for _, i := range f.list {
		if i.CustomerID == customerID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeIssues) UpdateStatus(ctx context.Context, id string, status issue.Status) (*issue.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.list {
		if i.ID == id {
			i.Status = status
			return i, nil
		}
	}
	return nil, nil
}

type fakeWarranties struct {
	list   []*warranty.Warranty
	failed bool
}

func (f *fakeWarranties) Create(ctx context.Context, w *warranty.Warranty) error {
	if f.failed {
		return errDB
	}
	f.list = append(f.list, w)
	return nil
}

func (f *fakeWarranties) GetBySerial(ctx context.Context, serial string) (*warranty.Warranty, error) {
	for _, w := range f.list {
		if w.SerialNumber == serial {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWarranties) ListAll(ctx context.Context) ([]*warranty.Warranty, error) {
	return f.list, nil
}

func (f *fakeWarranties) ListByCustomer(ctx context.Context, customerID string) ([]*warranty.Warranty, error) {
	var out []*warranty.Warranty
	for _, w := range f.list {
		if w.CustomerID == customerID {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeBookings struct {
	list   []*booking.Booking
	failed bool
}

func (f *fakeBookings) Create(ctx context.Context, b *booking.Booking) error {
	if f.failed {
		return errDB
	}
	f.list = append(f.list, b)
	return nil
}

func (f *fakeBookings) ListAll(ctx context.Context) ([]*booking.Booking, error) { return f.list, nil }

func (f *fakeBookings) ListByCustomer(ctx context.Context, customerID string) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range f.list {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) UpdateStatus(ctx context.Context, id string, status booking.Status) (*booking.Booking, error) {
	for _, b := range f.list {
		if b.ID == id {
			b.Status = status
			return b, nil
		}
	}
	return nil, nil
}

type fakeRegistrations struct {
	list []*registration.Registration
}

func (f *fakeRegistrations) Create(ctx context.Context, r *registration.Registration) error {
	f.list = append(f.list, r)
	return nil
}

func (f *fakeRegistrations) LatestBySerial(ctx context.Context, serial string) (*registration.Registration, error) {
	for i := len(f.list) - 1; i >= 0; i-- {
		if f.list[i].SerialNumber == serial {
			return f.list[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrations) ListAll(ctx context.Context) ([]*registration.Registration, error) {
	return f.list, nil
}

type fakeContacts struct {
	list []*contact.Form
}

func (f *fakeContacts) Create(ctx context.Context, c *contact.Form) error {
	f.list = append(f.list, c)
	return nil
}

func (f *fakeContacts) ListAll(ctx context.Context) ([]*contact.Form, error) { return f.list, nil }

type fakeOrders struct {
	mu     sync.Mutex
	list   []*order.Order
	failed bool
}

func (f *fakeOrders) Create(ctx context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return errDB
	}
	f.list = append(f.list, o)
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, id string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.list {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*order.Order
	for _, o := range f.list {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*order.Order(nil), f.list...), nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.list {
		if o.ID == id {
			o.Status = status
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return 0, errDB
	}
	var n int64
	for _, o := range f.list {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrders) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, o := range f.list {
		sum = sum.Add(o.Total)
	}
	return sum, nil
}

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]*user.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*user.User{}}
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Create(ctx context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(ctx context.Context, u *user.User) error { return f.Create(ctx, u) }

func (f *fakeUsers) ListAll(ctx context.Context) ([]*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*user.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

type fakeProducts struct {
	upserted []*product.Product
}

func (f *fakeProducts) GetByID(ctx context.Context, id string) (*product.Product, error) {
	return nil, nil
}

func (f *fakeProducts) ListAll(ctx context.Context) ([]*product.Product, error) {
	return f.upserted, nil
}

func (f *fakeProducts) Upsert(ctx context.Context, p *product.Product) error {
	f.upserted = append(f.upserted, p)
	return nil
}

func (f *fakeProducts) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeProducts) Count(ctx context.Context) (int64, error) {
	return int64(len(f.upserted)), nil
}

// recordingPublisher 记录投递的消息
type recordingPublisher struct {
	mu     sync.Mutex
	queues []string
	bodies [][]byte
	failed bool
}

func (p *recordingPublisher) Publish(ctx context.Context, queue string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failed {
		return errors.New("broker down")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.queues = append(p.queues, queue)
	p.bodies = append(p.bodies, b)
	return nil
}

// memorySheets 内存中的表格
type memorySheets struct {
	sheets map[string][][]string
	failed bool
}

func newMemorySheets() *memorySheets {
	return &memorySheets{sheets: map[string][][]string{}}
}

func (m *memorySheets) Append(ctx context.Context, sheet string, rows [][]string) error {
	if m.failed {
		return errors.New("sheets unavailable")
	}
	m.sheets[sheet] = append(m.sheets[sheet], rows...)
	return nil
}

func (m *memorySheets) Values(ctx context.Context, sheet string) ([][]string, error) {
	if m.failed {
		return nil, errors.New("sheets unavailable")
	}
	return m.sheets[sheet], nil
}

func (m *memorySheets) EnsureHeaders(ctx context.Context, sheet string, headers []string) error {
	if m.failed {
		return errors.New("sheets unavailable")
	}
	if len(m.sheets[sheet]) == 0 {
		m.sheets[sheet] = [][]string{headers}
	}
	return nil
}
