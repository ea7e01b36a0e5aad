package memory

import (
	"context"
	"sort"

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

// ---------- 商品 ----------

type productRepo struct{ t *table[product.Product] }

// NewProductRepository 创建商品仓储
func NewProductRepository() product.Repository {
	return &productRepo{t: newTable[product.Product]()}
}

func productID(id string) func(*product.Product) bool {
	return func(p *product.Product) bool { return p.ID == id }
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*product.Product, error) {
	return r.t.first(productID(id)), nil
}

func (r *productRepo) ListAll(ctx context.Context) ([]*product.Product, error) {
	list := r.t.newestFirst(nil)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

func (r *productRepo) Upsert(ctx context.Context, p *product.Product) error {
	r.t.stamp(&p.CreatedAt)
	p.UpdatedAt = r.t.now()
	r.t.replace(productID(p.ID), p)
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.t.remove(productID(id))
	return nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	return int64(r.t.count()), nil
}

// ---------- 用户 ----------

type userRepo struct{ t *table[user.User] }

// NewUserRepository 创建用户仓储
func NewUserRepository() user.Repository {
	return &userRepo{t: newTable[user.User]()}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.t.first(func(u *user.User) bool { return u.ID == id }), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.t.first(func(u *user.User) bool { return u.Email == email }), nil
}

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	r.t.stamp(&u.CreatedAt)
	r.t.insert(u)
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = r.t.now()
	r.t.replace(func(x *user.User) bool { return x.ID == u.ID }, u)
	return nil
}

func (r *userRepo) ListAll(ctx context.Context) ([]*user.User, error) {
	return r.t.newestFirst(nil), nil
}

// ---------- 订单 ----------

type orderRepo struct{ t *table[order.Order] }

// NewOrderRepository 创建订单仓储
func NewOrderRepository() order.Repository {
	return &orderRepo{t: newTable[order.Order]()}
}

func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	r.t.stamp(&o.CreatedAt)
	r.t.insert(o)
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*order.Order, error) {
	return r.t.first(func(o *order.Order) bool { return o.ID == id }), nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.t.newestFirst(func(o *order.Order) bool { return o.UserID == userID }), nil
}

func (r *orderRepo) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	list := r.t.newestFirst(nil)
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	return r.t.update(func(o *order.Order) bool { return o.ID == id }, func(o *order.Order) {
		o.Status = status
		o.UpdatedAt = r.t.now()
	}), nil
}

func (r *orderRepo) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	return int64(len(r.t.newestFirst(func(o *order.Order) bool { return o.Status == status }))), nil
}

func (r *orderRepo) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.t.newestFirst(nil) {
		sum = sum.Add(o.Total)
	}
	return sum, nil
}

// ---------- 客户 ----------

type customerRepo struct{ t *table[customer.Customer] }

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository() customer.Repository {
	return &customerRepo{t: newTable[customer.Customer]()}
}

func customerID(id string) func(*customer.Customer) bool {
	return func(c *customer.Customer) bool { return c.ID == id }
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.t.first(customerID(id)), nil
}

func (r *customerRepo) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.t.first(func(c *customer.Customer) bool { return c.Phone == phone }), nil
}

func (r *customerRepo) Create(ctx context.Context, c *customer.Customer) error {
	r.t.stamp(&c.CreatedAt)
	r.t.insert(c)
	return nil
}

func (r *customerRepo) Update(ctx context.Context, c *customer.Customer) error {
	r.t.replace(customerID(c.ID), c)
	return nil
}

func (r *customerRepo) UpdateLatestMessage(ctx context.Context, id, message string) error {
	r.t.update(customerID(id), func(c *customer.Customer) { c.LatestMessage = &message })
	return nil
}

func (r *customerRepo) ListAll(ctx context.Context) ([]*customer.Customer, error) {
	return r.t.newestFirst(nil), nil
}

// ---------- 工单 ----------

type issueRepo struct{ t *table[issue.Issue] }

// NewIssueRepository 创建工单仓储
func NewIssueRepository() issue.Repository {
	return &issueRepo{t: newTable[issue.Issue]()}
}

func (r *issueRepo) Create(ctx context.Context, i *issue.Issue) error {
	r.t.stamp(&i.CreatedAt)
	r.t.insert(i)
	return nil
}

func (r *issueRepo) ListAll(ctx context.Context) ([]*issue.Issue, error) {
	return r.t.newestFirst(nil), nil
}

func (r *issueRepo) ListByCustomer(ctx context.Context, customerID string) ([]*issue.Issue, error) {
	return r.t.newestFirst(func(i *issue.Issue) bool { return i.CustomerID == customerID }), nil
}

func (r *issueRepo) UpdateStatus(ctx context.Context, id string, status issue.Status) (*issue.Issue, error) {
	return r.t.update(func(i *issue.Issue) bool { return i.ID == id }, func(i *issue.Issue) { i.Status = status }), nil
}

// ---------- 保修 ----------

type warrantyRepo struct{ t *table[warranty.Warranty] }

// NewWarrantyRepository 创建保修仓储
func NewWarrantyRepository() warranty.Repository {
	return &warrantyRepo{t: newTable[warranty.Warranty]()}
}

func (r *warrantyRepo) Create(ctx context.Context, w *warranty.Warranty) error {
	r.t.stamp(&w.CreatedAt)
	r.t.insert(w)
	return nil
}

// GetBySerial 同一序列号以最新一条为准
func (r *warrantyRepo) GetBySerial(ctx context.Context, serial string) (*warranty.Warranty, error) {
	return r.t.latest(func(w *warranty.Warranty) bool { return w.SerialNumber == serial }), nil
}

func (r *warrantyRepo) ListAll(ctx context.Context) ([]*warranty.Warranty, error) {
	return r.t.newestFirst(nil), nil
}

func (r *warrantyRepo) ListByCustomer(ctx context.Context, customerID string) ([]*warranty.Warranty, error) {
	return r.t.newestFirst(func(w *warranty.Warranty) bool { return w.CustomerID == customerID }), nil
}

// ---------- 预约 ----------

type bookingRepo struct{ t *table[booking.Booking] }

// NewBookingRepository 创建预约仓储
func NewBookingRepository() booking.Repository {
	return &bookingRepo{t: newTable[booking.Booking]()}
}

func byPreferredDate(list []*booking.Booking) []*booking.Booking {
	sort.SliceStable(list, func(i, j int) bool { return list[i].PreferredDate < list[j].PreferredDate })
	return list
}

func (r *bookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	r.t.stamp(&b.CreatedAt)
	r.t.insert(b)
	return nil
}

func (r *bookingRepo) ListAll(ctx context.Context) ([]*booking.Booking, error) {
	return byPreferredDate(r.t.newestFirst(nil)), nil
}

func (r *bookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]*booking.Booking, error) {
	return byPreferredDate(r.t.newestFirst(func(b *booking.Booking) bool { return b.CustomerID == customerID })), nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, status booking.Status) (*booking.Booking, error) {
	return r.t.update(func(b *booking.Booking) bool { return b.ID == id }, func(b *booking.Booking) { b.Status = status }), nil
}

// ---------- 公开保修登记 ----------

type registrationRepo struct{ t *table[registration.Registration] }

// NewRegistrationRepository 创建保修登记仓储
func NewRegistrationRepository() registration.Repository {
	return &registrationRepo{t: newTable[registration.Registration]()}
}

func (r *registrationRepo) Create(ctx context.Context, reg *registration.Registration) error {
	r.t.stamp(&reg.RegisteredAt)
	r.t.insert(reg)
	return nil
}

func (r *registrationRepo) LatestBySerial(ctx context.Context, serial string) (*registration.Registration, error) {
	return r.t.latest(func(x *registration.Registration) bool { return x.SerialNumber == serial }), nil
}

func (r *registrationRepo) ListAll(ctx context.Context) ([]*registration.Registration, error) {
	return r.t.newestFirst(nil), nil
}

// ---------- 联系表单 ----------

type contactRepo struct{ t *table[contact.Form] }

// NewContactRepository 创建联系表单仓储
func NewContactRepository() contact.Repository {
	return &contactRepo{t: newTable[contact.Form]()}
}

func (r *contactRepo) Create(ctx context.Context, f *contact.Form) error {
	r.t.stamp(&f.CreatedAt)
	r.t.insert(f)
	return nil
}

func (r *contactRepo) ListAll(ctx context.Context) ([]*contact.Form, error) {
	return r.t.newestFirst(nil), nil
}
