package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/catalog"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

// browser 在请求之间回传 cookie
type browser struct {
	t       *testing.T
	app     *iris.Application
	cookies map[string]*http.Cookie
	header  http.Header
}

func newBrowser(t *testing.T, app *iris.Application) *browser {
	require.NoError(t, app.Build())
	return &browser{t: t, app: app, cookies: map[string]*http.Cookie{}, header: http.Header{}}
}

func (b *browser) do(method, path string, body any) (int, map[string]any) {
	b.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range b.header {
		req.Header[k] = v
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.app.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(b.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", body)
	return d
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.Database.Driver = "memory"
	cfg.RateLimit = config.RateLimitConfig{Capacity: 1000, RefillPerSecond: 1000}
	return cfg
}

func newStorefrontApp(t *testing.T) (*iris.Application, Repos) {
	cfg := testConfig()
	repos := MemoryRepos()
	productSvc := service.NewProductService(catalog.NewStore(catalog.Seed()), repos.Products)
	userSvc := service.NewUserService(repos.Users, &cfg.JWT)
	require.NoError(t, userSvc.SeedDefaults(context.Background()))

	sf := &Storefront{
		Config:       cfg,
		Products:     productSvc,
		Carts:        service.NewCartService(cartStorage(nil), productSvc),
		Users:        userSvc,
		SessionStore: sessionStorage(nil),
		Checkout:     service.NewCheckoutService(repos.Orders, mq.NopPublisher{}, nil),
		Orders:       service.NewOrderService(repos.Orders),
		Warranty:     service.NewWarrantyService(repos.Warranties, repos.Registrations, mq.NopPublisher{}, nil),
		Contact:      service.NewContactService(repos.Contacts, mq.NopPublisher{}, "", nil),
	}
	app := iris.New()
	sf.Mount(app)
	return app, repos
}

func checkoutForm() service.CheckoutForm {
	return service.CheckoutForm{
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Phone:      "+919876543210",
		Address:    "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		Pincode:    "560001",
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/29",
		CVV:        "123",
	}
}

func TestStorefrontCatalog(t *testing.T) {
	app, _ := newStorefrontApp(t)
	b := newBrowser(t, app)

	code, body := b.do(http.MethodGet, "/api/products?category=laptop&sort=price-low", nil)
	require.Equal(t, http.StatusOK, code)
	items := data(t, body)["items"].([]any)
	require.NotEmpty(t, items)
	prev := 0.0
	for _, it := range items {
		p := it.(map[string]any)
		assert.Equal(t, "laptop", p["category"])
		assert.GreaterOrEqual(t, p["price"].(float64), prev)
		prev = p["price"].(float64)
	}

	code, _ = b.do(http.MethodGet, "/api/products?sort=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = b.do(http.MethodGet, "/api/products/laptop-pro-16", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotNil(t, data(t, body)["product"])

	code, body = b.do(http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.EqualValues(t, http.StatusNotFound, body["code"])

	code, body = b.do(http.MethodGet, "/api/compare?category=laptop&ids=laptop-pro-16,laptop-air-14", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotNil(t, body["data"])

	code, _ = b.do(http.MethodGet, "/api/compare?category=laptop&ids=laptop-pro-16", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = b.do(http.MethodGet, "/api/dealers?country=all", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, data(t, body)["countries"])
}

func TestStorefrontCartAndCheckout(t *testing.T) {
	app, repos := newStorefrontApp(t)
	b := newBrowser(t, app)

	code, _ := b.do(http.MethodPost, "/api/cart/items", iris.Map{"product_id": "part-ram-16", "quantity": 1})
	require.Equal(t, http.StatusOK, code)
	code, body := b.do(http.MethodPost, "/api/cart/items", iris.Map{"product_id": "part-ram-16", "quantity": 1})
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, data(t, body)["total_items"])

	code, _ = b.do(http.MethodPost, "/api/cart/items", iris.Map{"product_id": "missing"})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = b.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, data(t, body)["items"], 1)

	bad := checkoutForm()
	bad.Pincode = "12"
	code, _ = b.do(http.MethodPost, "/api/checkout", bad)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = b.do(http.MethodPost, "/api/checkout", checkoutForm())
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, data(t, body)["order_number"], "ORD-")

	code, body = b.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, data(t, body)["total_items"])

	orders, err := repos.Orders.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].UserID)

	code, _ = b.do(http.MethodPost, "/api/checkout", checkoutForm())
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStorefrontAuthSession(t *testing.T) {
	app, _ := newStorefrontApp(t)
	b := newBrowser(t, app)

	code, _ := b.do(http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = b.do(http.MethodPost, "/api/auth/login", iris.Map{"email": "user@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := b.do(http.MethodPost, "/api/auth/login", iris.Map{"email": "user@example.com", "password": "password"})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, data(t, body)["token"])

	code, body = b.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, auth.StateAuthenticated.String(), data(t, body)["state"])

	code, body = b.do(http.MethodPut, "/api/auth/profile", iris.Map{"phone": "+911234567890"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "+911234567890", data(t, body)["user"].(map[string]any)["phone"])

	code, _ = b.do(http.MethodPost, "/api/cart/items", iris.Map{"product_id": "part-ssd-1tb"})
	require.Equal(t, http.StatusOK, code)
	code, _ = b.do(http.MethodPost, "/api/checkout", checkoutForm())
	require.Equal(t, http.StatusOK, code)

	code, body = b.do(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, body = b.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "anonymous", data(t, body)["state"])

	code, _ = b.do(http.MethodPost, "/api/auth/register", iris.Map{"name": "Dup", "email": "USER@example.com", "password": "x"})
	assert.Equal(t, http.StatusConflict, code)
	code, _ = b.do(http.MethodPost, "/api/auth/register", iris.Map{"email": "new@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStorefrontSupportForms(t *testing.T) {
	app, repos := newStorefrontApp(t)
	b := newBrowser(t, app)

	code, _ := b.do(http.MethodGet, "/api/warranty/status?serial=", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := b.do(http.MethodGet, "/api/warranty/status?serial=UNKNOWN", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, data(t, body)["valid"])
	assert.Equal(t, service.MsgWarrantyNotFound, data(t, body)["message"])

	code, _ = b.do(http.MethodPost, "/api/warranty/register", iris.Map{
		"serial_number": "SN-1", "purchase_date": "2025-13-01", "name": "A", "email": "a@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = b.do(http.MethodPost, "/api/contact", iris.Map{
		"first_name": "Ravi", "last_name": "K", "phone": "+91 98765-43210", "message": "<b>hi</b>",
	})
	require.Equal(t, http.StatusOK, code)
	forms, err := repos.Contacts.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "+919876543210", forms[0].Phone)
	assert.Equal(t, "hi", forms[0].Message)
}
