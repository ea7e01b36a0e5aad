package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/cart"
	"github.com/vanshrane27/electrohub-showcase/internal/catalog"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
)

func newProducts() *ProductService {
	return NewProductService(catalog.NewStore(catalog.Seed()), &fakeProducts{})
}

func validForm() CheckoutForm {
	return CheckoutForm{
		Name: "Priya Nair", Email: "priya@example.com", Phone: "9876543210",
		Address: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001",
		CardNumber: "4111 1111 1111 1111", Expiry: "12/29", CVV: "123",
	}
}

func TestParseListQuery(t *testing.T) {
	o, err := ParseListQuery(ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultOptions(), o)

	o, err = ParseListQuery(ListQuery{Category: "laptop", MinPrice: "50000", MaxPrice: "100000", InStock: "true", Sort: "price-low"})
	require.NoError(t, err)
	assert.Equal(t, "laptop", o.Category)
	assert.Equal(t, int64(50000), o.PriceMin)
	assert.True(t, o.InStockOnly)
	assert.Equal(t, catalog.SortPriceLow, o.Sort)

	for _, q := range []ListQuery{
		{Sort: "cheapest"},
		{Category: "phones"},
		{MinPrice: "abc"},
		{MinPrice: "10", MaxPrice: "5"},
		{InStock: "maybe"},
	} {
		_, err := ParseListQuery(q)
		assert.Equal(t, http.StatusBadRequest, StatusOf(err), "%+v", q)
	}
}

func TestProductDetailAndCompare(t *testing.T) {
	svc := newProducts()

	d, err := svc.Detail("laptop-pro-16")
	require.NoError(t, err)
	assert.Len(t, d.Related, 2)
	for _, r := range d.Related {
		assert.Equal(t, product.CategoryLaptop, r.Category)
		assert.NotEqual(t, "laptop-pro-16", r.ID)
	}

	_, err = svc.Detail("nope")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	tbl, err := svc.Compare("", []string{"laptop-pro-16", "laptop-air-14", "tv-oled-55"})
	require.NoError(t, err)
	assert.Len(t, tbl.Products, 2)
	for _, row := range tbl.Rows {
		assert.Len(t, row.Cells, 2)
	}

	_, err = svc.Compare("laptop", []string{"laptop-pro-16"})
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	_, err = svc.Compare("phones", nil)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestProductAddDeleteInMemory(t *testing.T) {
	svc := newProducts()
	before := svc.Count()

	p, err := svc.Add(&product.Product{Name: "Mini PC", Category: product.CategoryPC, Price: 25000})
	require.NoError(t, err)
	assert.Equal(t, before+1, svc.Count())
	assert.Equal(t, p.ID, svc.All()[0].ID)

	_, err = svc.Add(&product.Product{ID: p.ID, Name: "Dup", Category: product.CategoryPC, Price: 1})
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	_, err = svc.Add(&product.Product{Name: "Bad", Category: "phones", Price: 1})
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	require.NoError(t, svc.Delete(p.ID))
	assert.Equal(t, http.StatusNotFound, StatusOf(svc.Delete(p.ID)))
}

func TestSeedDatabaseUpsertsCatalog(t *testing.T) {
	repo := &fakeProducts{}
	svc := NewProductService(catalog.NewStore(nil), repo)
	n, err := svc.SeedDatabase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(catalog.Seed()), n)
	assert.Len(t, repo.upserted, n)
}

func TestCartServiceViewTotals(t *testing.T) {
	ctx := context.Background()
	products := newProducts()
	svc := NewCartService(cart.NewMemoryStorage(), products)

	c, err := svc.Open(ctx, "sess-1")
	require.NoError(t, err)
	require.NoError(t, svc.Add(ctx, c, "part-ssd-1tb", 2))
	require.NoError(t, svc.Add(ctx, c, "part-ram-16", 0))
	assert.Equal(t, http.StatusNotFound, StatusOf(svc.Add(ctx, c, "ghost", 1)))

	v := View(c)
	assert.Equal(t, 3, v.TotalItems)
	assert.True(t, v.TotalPrice.Equal(decimal.NewFromInt(2*6999+4499)))
	assert.True(t, v.Summary.Subtotal.Equal(v.TotalPrice))
	assert.True(t, v.Summary.Total.Equal(v.Summary.Subtotal.Add(v.Summary.Tax)))

	reopened, err := svc.Open(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.TotalItems())

	require.NoError(t, svc.Update(ctx, reopened, "part-ssd-1tb", 0))
	require.NoError(t, svc.Remove(ctx, reopened, "part-ram-16"))
	assert.Equal(t, 0, View(reopened).TotalItems)
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	products := newProducts()
	carts := NewCartService(cart.NewMemoryStorage(), products)
	orders := &fakeOrders{}
	pub := &recordingPublisher{}
	svc := NewCheckoutService(orders, pub, fixedClock(2025, 6, 10))

	c, err := carts.Open(ctx, "sess")
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, c, "", validForm())
	require.Error(t, err)
	assert.Equal(t, "Your cart is empty", err.Error())

	require.NoError(t, carts.Add(ctx, c, "part-ssd-1tb", 1))
	rc, err := svc.PlaceOrder(ctx, c, "user-1", validForm())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rc.OrderNumber, "ORD-"))
	assert.Equal(t, strings.ToUpper(rc.OrderNumber), rc.OrderNumber)
	assert.Equal(t, "₹8,259", rc.Display.Total)

	require.Len(t, orders.list, 1)
	o := orders.list[0]
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, "user-1", o.UserID)
	assert.Equal(t, 1, o.ItemCount())
	assert.Equal(t, 0, c.TotalItems())

	require.Equal(t, []string{mq.QueueOrderPlaced}, pub.queues)
	var evt OrderPlacedEvent
	require.NoError(t, json.Unmarshal(pub.bodies[0], &evt))
	assert.Equal(t, rc.OrderNumber, evt.OrderNumber)
	assert.Equal(t, "8258.82", evt.Total)
	assert.Equal(t, 1, evt.Items)
	assert.NotEmpty(t, evt.PlacedAt)
}

func TestCheckoutValidation(t *testing.T) {
	cases := map[string]func(f *CheckoutForm){
		"missing city": func(f *CheckoutForm) { f.City = "" },
		"bad email":    func(f *CheckoutForm) { f.Email = "priya" },
		"pincode":      func(f *CheckoutForm) { f.Pincode = "5600" },
		"card":         func(f *CheckoutForm) { f.CardNumber = "4111" },
		"expiry":       func(f *CheckoutForm) { f.Expiry = "13/29" },
		"cvv":          func(f *CheckoutForm) { f.CVV = "12" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := validForm()
			mutate(&f)
			assert.Equal(t, http.StatusBadRequest, StatusOf(f.Validate()))
		})
	}
	assert.NoError(t, validForm().Validate())
}

func TestCheckoutPersistenceFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	carts := NewCartService(cart.NewMemoryStorage(), newProducts())
	svc := NewCheckoutService(&fakeOrders{failed: true}, nil, nil)

	c, err := carts.Open(ctx, "sess")
	require.NoError(t, err)
	require.NoError(t, carts.Add(ctx, c, "part-ram-16", 1))

	_, err = svc.PlaceOrder(ctx, c, "", validForm())
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, 1, c.TotalItems())
}

func TestOrderAcceptAndDashboardStats(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{list: []*order.Order{
		{ID: "o1", OrderNumber: "ORD-1", Status: order.StatusPending, Total: decimal.NewFromInt(1180)},
		{ID: "o2", OrderNumber: "ORD-2", Status: order.StatusPending, Total: decimal.NewFromInt(2360)},
	}}
	osvc := NewOrderService(orders)

	o, err := osvc.Accept(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusAccepted, o.Status)
	_, err = osvc.Accept(ctx, "ghost")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	products := newProducts()
	st, err := NewDashboardService(products, orders).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, products.Count(), st.Products)
	assert.Equal(t, int64(1), st.PendingOrders)
	assert.Equal(t, int64(1), st.AcceptedOrders)
	assert.True(t, st.Revenue.Equal(decimal.NewFromInt(3540)))
	assert.Equal(t, "₹3,540", st.RevenueDisplay)

	orders.failed = true
	_, err = NewDashboardService(products, orders).Stats(ctx)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func TestUserServiceAuthenticateAndRegister(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	svc := NewUserService(repo, &config.JWTConfig{Secret: "s", TTLMinutes: 5})
	require.NoError(t, svc.SeedDefaults(ctx))
	require.NoError(t, svc.SeedDefaults(ctx))
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	u, err := svc.Authenticate(ctx, "user@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", u.Name)
	assert.False(t, u.IsAdmin)

	admin, err := svc.Authenticate(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	_, err = svc.Authenticate(ctx, "user@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	_, err = svc.Register(ctx, "Dup", "user@example.com", "x")
	assert.ErrorIs(t, err, auth.ErrEmailExists)
	assert.Equal(t, http.StatusConflict, StatusOf(err))

	nu, err := svc.Register(ctx, "Kiran", "Kiran@Example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "kiran@example.com", nu.Email)
	assert.NotEqual(t, "secret", nu.PasswordHash)

	token, err := svc.IssueToken(nu)
	require.NoError(t, err)
	claims, err := auth.ParseToken(&config.JWTConfig{Secret: "s"}, token)
	require.NoError(t, err)
	assert.Equal(t, nu.ID, claims.UserID)
}

func TestUserServiceSaveProfileKeepsPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsers()
	svc := NewUserService(repo, &config.JWTConfig{Secret: "s"})
	u, err := svc.Register(ctx, "Kiran", "kiran@example.com", "secret")
	require.NoError(t, err)

	edited := *u
	edited.Name = "Kiran K"
	edited.Phone = "+919999999999"
	edited.PasswordHash = ""
	require.NoError(t, svc.SaveProfile(ctx, &edited))

	_, err = svc.Authenticate(ctx, "kiran@example.com", "secret")
	require.NoError(t, err)
	stored, _ := repo.GetByID(ctx, u.ID)
	assert.Equal(t, "Kiran K", stored.Name)
	assert.Equal(t, "+919999999999", stored.Phone)
}
