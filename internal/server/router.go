package server

import (
	"context"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"
	"github.com/kataras/iris/v12/sessions"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/cart"
	"github.com/vanshrane27/electrohub-showcase/internal/catalog"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/logger"
	"github.com/vanshrane27/electrohub-showcase/internal/middleware"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
	webcontrollers "github.com/vanshrane27/electrohub-showcase/web/controllers"
)

// SessionCookie 前台会话 cookie 名
const SessionCookie = "nexatech_sid"

// Storefront 前台路由依赖
type Storefront struct {
	Config       *config.Config
	Products     *service.ProductService
	Carts        *service.CartService
	Users        *service.UserService
	SessionStore auth.SessionStorage
	Checkout     *service.CheckoutService
	Orders       *service.OrderService
	Warranty     *service.WarrantyService
	Contact      *service.ContactService
}

// RegisterRoutes 注册前台 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	repos := OpenRepos(cfg)
	rc := redisClient(cfg)
	pub := publisher(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := catalog.Load(ctx, repos.Products)
	if err != nil {
		zap.L().Fatal("load catalog failed", zap.Error(err))
	}
	zap.L().Info("catalog loaded", zap.Int("products", store.Len()))

	productSvc := service.NewProductService(store, repos.Products)
	userSvc := service.NewUserService(repos.Users, &cfg.JWT)
	if err := userSvc.SeedDefaults(ctx); err != nil {
		zap.L().Fatal("seed demo accounts failed", zap.Error(err))
	}

	sf := &Storefront{
		Config:       cfg,
		Products:     productSvc,
		Carts:        service.NewCartService(cartStorage(rc), productSvc),
		Users:        userSvc,
		SessionStore: sessionStorage(rc),
		Checkout:     service.NewCheckoutService(repos.Orders, pub, nil),
		Orders:       service.NewOrderService(repos.Orders),
		Warranty:     service.NewWarrantyService(repos.Warranties, repos.Registrations, pub, nil),
		Contact:      service.NewContactService(repos.Contacts, pub, cfg.Webhook.N8NURL, nil),
	}
	sf.Mount(app)
}

// Mount 挂载前台路由
func (sf *Storefront) Mount(app *iris.Application) {
	cookies := sessions.New(sessions.Config{
		Cookie:  SessionCookie,
		Expires: 24 * time.Hour,
	})
	app.Use(logger.AccessLog())
	app.Use(cookies.Handler())

	formLimit := middleware.FormRateLimit(&sf.Config.RateLimit)
	userCtrl := webcontrollers.NewUserController(sf.Users, sf.SessionStore, sf.Carts)

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// 商品列表/详情走 MVC
	products := mvc.New(api.Party("/products"))
	products.Register(sf.Products)
	products.Handle(new(webcontrollers.ProductController))

	// 对比：/api/compare?category=laptop&ids=a,b,c
	api.Get("/compare", func(ctx iris.Context) {
		var ids []string
		if raw := ctx.URLParam("ids"); raw != "" {
			ids = strings.Split(raw, ",")
		}
		t, err := sf.Products.Compare(ctx.URLParam("category"), ids)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, t)
	})

	// ---------- 购物车 ----------
	cartAPI := api.Party("/cart")
	cartAPI.Get("/", sf.withCart(func(ctx iris.Context, c *cartHandle) {
		webcontrollers.Reply(ctx, service.View(c.store))
	}))
	cartAPI.Post("/items", sf.withCart(func(ctx iris.Context, c *cartHandle) {
		var req struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil || req.ProductID == "" {
			webcontrollers.BadRequest(ctx, "product_id is required")
			return
		}
		c.reply(ctx, sf.Carts.Add(ctx.Request().Context(), c.store, req.ProductID, req.Quantity))
	}))
	cartAPI.Put("/items/{id}", sf.withCart(func(ctx iris.Context, c *cartHandle) {
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			webcontrollers.BadRequest(ctx, "quantity is required")
			return
		}
		c.reply(ctx, sf.Carts.Update(ctx.Request().Context(), c.store, ctx.Params().Get("id"), req.Quantity))
	}))
	cartAPI.Delete("/items/{id}", sf.withCart(func(ctx iris.Context, c *cartHandle) {
		c.reply(ctx, sf.Carts.Remove(ctx.Request().Context(), c.store, ctx.Params().Get("id")))
	}))
	cartAPI.Delete("/", sf.withCart(func(ctx iris.Context, c *cartHandle) {
		c.reply(ctx, sf.Carts.Clear(ctx.Request().Context(), c.store))
	}))

	// 下单
	api.Post("/checkout", formLimit, sf.withCart(func(ctx iris.Context, c *cartHandle) {
		var form service.CheckoutForm
		if err := ctx.ReadJSON(&form); err != nil {
			webcontrollers.BadRequest(ctx, "Invalid request body")
			return
		}
		var userID string
		if u, err := userCtrl.CurrentUser(ctx); err == nil && u != nil {
			userID = u.ID
		}
		rc, err := sf.Checkout.PlaceOrder(ctx.Request().Context(), c.store, userID, form)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, rc)
	}))

	// ---------- 账号 ----------
	authAPI := api.Party("/auth")
	authAPI.Post("/register", formLimit, userCtrl.PostRegister)
	authAPI.Post("/login", formLimit, userCtrl.PostLogin)
	authAPI.Post("/logout", userCtrl.PostLogout)
	authAPI.Get("/me", userCtrl.GetMe)
	authAPI.Put("/profile", userCtrl.PutProfile)

	// 我的订单
	api.Get("/orders", func(ctx iris.Context) {
		u, err := userCtrl.CurrentUser(ctx)
		if err != nil {
			webcontrollers.ReplyError(ctx, service.Persistence("Failed to load session", err))
			return
		}
		if u == nil {
			webcontrollers.ReplyError(ctx, service.Unauthorized("Please log in to view your orders"))
			return
		}
		list, err := sf.Orders.ListByUser(ctx.Request().Context(), u.ID)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	// ---------- 支持页面 ----------
	api.Get("/warranty/status", func(ctx iris.Context) {
		st, err := sf.Warranty.CheckStatus(ctx.Request().Context(), ctx.URLParam("serial"))
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, st)
	})
	api.Post("/warranty/register", formLimit, func(ctx iris.Context) {
		var in service.RegistrationInput
		if err := ctx.ReadJSON(&in); err != nil {
			webcontrollers.BadRequest(ctx, "Invalid request body")
			return
		}
		reg, err := sf.Warranty.Register(ctx.Request().Context(), in)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, reg)
	})
	api.Post("/contact", formLimit, func(ctx iris.Context) {
		var in service.ContactInput
		if err := ctx.ReadJSON(&in); err != nil {
			webcontrollers.BadRequest(ctx, "Invalid request body")
			return
		}
		f, err := sf.Contact.Submit(ctx.Request().Context(), in)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, f)
	})
	api.Get("/dealers", func(ctx iris.Context) {
		webcontrollers.Reply(ctx, iris.Map{
			"dealers":   catalog.Dealers(ctx.URLParam("country")),
			"countries": catalog.DealerCountries(),
		})
	})
}

// cartHandle 当前请求的购物车
type cartHandle struct {
	store *cart.Store
}

// reply 购物车变更后统一返回最新视图
func (c *cartHandle) reply(ctx iris.Context, err error) {
	if err != nil {
		webcontrollers.ReplyError(ctx, err)
		return
	}
	webcontrollers.Reply(ctx, service.View(c.store))
}

// withCart 按会话 cookie 打开购物车再交给 fn
func (sf *Storefront) withCart(fn func(iris.Context, *cartHandle)) iris.Handler {
	return func(ctx iris.Context) {
		store, err := sf.Carts.Open(ctx.Request().Context(), webcontrollers.SessionID(ctx))
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		fn(ctx, &cartHandle{store: store})
	}
}
