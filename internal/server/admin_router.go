package server

import (
	"context"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/catalog"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
	"github.com/vanshrane27/electrohub-showcase/internal/logger"
	"github.com/vanshrane27/electrohub-showcase/internal/middleware"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
	webcontrollers "github.com/vanshrane27/electrohub-showcase/web/controllers"
)

// Admin 后台路由依赖
type Admin struct {
	JWT       *config.JWTConfig
	Tokens    *auth.TokenCache
	Products  *service.ProductService
	Orders    *service.OrderService
	Dashboard *service.DashboardService
	Users     *service.UserService
	Customers *service.CustomerService
	Issues    *service.IssueService
	Warranty  *service.WarrantyService
	Bookings  *service.BookingService
	Contact   *service.ContactService
}

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由
// 端口通常是 8081，与前台 Web 服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
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
	productSvc := service.NewProductService(store, repos.Products)
	userSvc := service.NewUserService(repos.Users, &cfg.JWT)
	if err := userSvc.SeedDefaults(ctx); err != nil {
		zap.L().Fatal("seed demo accounts failed", zap.Error(err))
	}

	a := &Admin{
		JWT:       &cfg.JWT,
		Tokens:    tokenCache(cfg, rc),
		Products:  productSvc,
		Orders:    service.NewOrderService(repos.Orders),
		Dashboard: service.NewDashboardService(productSvc, repos.Orders),
		Users:     userSvc,
		Customers: service.NewCustomerService(repos.Customers, nil),
		Issues:    service.NewIssueService(repos.Issues, repos.Customers),
		Warranty:  service.NewWarrantyService(repos.Warranties, repos.Registrations, pub, nil),
		Bookings:  service.NewBookingService(repos.Bookings),
		Contact:   service.NewContactService(repos.Contacts, pub, "", nil),
	}
	a.Mount(app)
}

// Mount 挂载后台路由
func (a *Admin) Mount(app *iris.Application) {
	app.Use(logger.AccessLog())

	// 后台登录，只签发管理员 token
	app.Post("/api/login", func(ctx iris.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			webcontrollers.BadRequest(ctx, "Invalid request body")
			return
		}
		u, err := a.Users.Authenticate(ctx.Request().Context(), req.Email, req.Password)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		if !u.IsAdmin {
			ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"code": iris.StatusForbidden, "msg": "admin access required"})
			return
		}
		token, err := a.Users.IssueToken(u)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, iris.Map{"user": u, "token": token})
	})

	api := app.Party("/api", middleware.JWTAuth(a.JWT, a.Tokens), middleware.RequireAdmin())

	// ---------- 商品管理 ----------

	// 商品列表（后台用：返回目录中的全部商品）
	api.Get("/products", func(ctx iris.Context) {
		webcontrollers.Reply(ctx, a.Products.All())
	})

	// 新增商品，只写内存目录
	api.Post("/products", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			webcontrollers.BadRequest(ctx, "Invalid request body")
			return
		}
		p, err := a.Products.Add(req.toProduct())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, p)
	})

	api.Delete("/products/{id:string}", func(ctx iris.Context) {
		if err := a.Products.Delete(ctx.Params().Get("id")); err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	// ---------- 订单 ----------

	api.Get("/orders", func(ctx iris.Context) {
		list, err := a.Orders.ListRecent(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	api.Post("/orders/{id:string}/accept", func(ctx iris.Context) {
		o, err := a.Orders.Accept(ctx.Request().Context(), ctx.Params().Get("id"))
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, o)
	})

	api.Get("/stats", func(ctx iris.Context) {
		st, err := a.Dashboard.Stats(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, st)
	})

	api.Get("/users", func(ctx iris.Context) {
		list, err := a.Users.ListAll(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	// ---------- 客服工作台 ----------

	api.Get("/customers", func(ctx iris.Context) {
		list, err := a.Customers.List(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	// 客户详情，附带工单、保修与预约
	api.Get("/customers/{id:string}", func(ctx iris.Context) {
		rctx := ctx.Request().Context()
		id := ctx.Params().Get("id")
		c, err := a.Customers.Get(rctx, id)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		issues, err := a.Issues.ListByCustomer(rctx, id)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		warranties, err := a.Warranty.ListByCustomer(rctx, id)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		bookings, err := a.Bookings.ListByCustomer(rctx, id)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, iris.Map{
			"customer":   c,
			"issues":     issues,
			"warranties": warranties,
			"bookings":   bookings,
		})
	})

	api.Get("/issues", func(ctx iris.Context) {
		list, err := a.Issues.List(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	api.Put("/issues/{id:string}/status", func(ctx iris.Context) {
		var req statusRequest
		if err := ctx.ReadJSON(&req); err != nil {
			webcontrollers.BadRequest(ctx, "Invalid request body")
			return
		}
		is, err := a.Issues.UpdateStatus(ctx.Request().Context(), ctx.Params().Get("id"), req.Status)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, is)
	})

	api.Get("/warranties", func(ctx iris.Context) {
		list, err := a.Warranty.List(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	api.Get("/registrations", func(ctx iris.Context) {
		list, err := a.Warranty.ListRegistrations(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	api.Get("/bookings", func(ctx iris.Context) {
		list, err := a.Bookings.List(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	api.Put("/bookings/{id:string}/status", func(ctx iris.Context) {
		var req statusRequest
		if err := ctx.ReadJSON(&req); err != nil {
			webcontrollers.BadRequest(ctx, "Invalid request body")
			return
		}
		b, err := a.Bookings.UpdateStatus(ctx.Request().Context(), ctx.Params().Get("id"), req.Status)
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, b)
	})

	api.Get("/contact-forms", func(ctx iris.Context) {
		list, err := a.Contact.List(ctx.Request().Context())
		if err != nil {
			webcontrollers.ReplyError(ctx, err)
			return
		}
		webcontrollers.Reply(ctx, list)
	})

	// 运行指标
	api.Get("/monitor", func(ctx iris.Context) {
		webcontrollers.Reply(ctx, service.GetMonitor().GetStats())
	})
}

// ---- 辅助结构 ----

type statusRequest struct {
	Status string `json:"status"`
}

type productRequest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"originalPrice"`
	Rating        float64  `json:"rating"`
	Image         string   `json:"image"`
	ShortSpecs    string   `json:"shortSpecs"`
	Features      []string `json:"features"`
}

// toProduct 其余字段由目录补默认值
func (r *productRequest) toProduct() *product.Product {
	return &product.Product{
		ID:            r.ID,
		Name:          r.Name,
		Category:      product.Category(r.Category),
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Rating:        r.Rating,
		Image:         r.Image,
		ShortSpecs:    r.ShortSpecs,
		Features:      r.Features,
	}
}
