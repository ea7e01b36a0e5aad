package server

import (
	"encoding/json"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/sheets"
	"github.com/vanshrane27/electrohub-showcase/internal/logger"
	"github.com/vanshrane27/electrohub-showcase/internal/middleware"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

// Functions 对外回调接口的依赖（n8n / AI 助手 / 表单同步）
type Functions struct {
	Customers *service.CustomerService
	Issues    *service.IssueService
	Callback  *service.CallbackService
	Sheets    *service.SheetsService
	RateLimit config.RateLimitConfig
}

// RegisterFunctionRoutes 注册 /functions/v1 下的 HTTP 路由
func RegisterFunctionRoutes(app *iris.Application, cfg *config.Config) {
	repos := OpenRepos(cfg)

	f := &Functions{
		Customers: service.NewCustomerService(repos.Customers, nil),
		Issues:    service.NewIssueService(repos.Issues, repos.Customers),
		Callback:  service.NewCallbackService(repos.Customers, repos.Issues, repos.Warranties, repos.Bookings),
		Sheets:    service.NewSheetsService(sheetWriter(&cfg.Sheets), nil),
		RateLimit: cfg.RateLimit,
	}
	f.Mount(app)
}

// sheetWriter 未配置服务账号时返回 nil
func sheetWriter(cfg *config.SheetsConfig) service.SheetWriter {
	if !cfg.Enabled() {
		zap.L().Warn("google sheets not configured")
		return nil
	}
	key, err := sheets.LoadKey(cfg.CredentialsFile)
	if err != nil {
		zap.L().Fatal("load sheets credentials failed", zap.Error(err))
	}
	client, err := sheets.NewClient(cfg, key, nil)
	if err != nil {
		zap.L().Fatal("create sheets client failed", zap.Error(err))
	}
	return client
}

// Mount 挂载路由，预检请求在路由匹配前处理
func (f *Functions) Mount(app *iris.Application) {
	app.UseRouter(middleware.CORS())
	app.Use(logger.AccessLog())

	fn := app.Party("/functions/v1")
	fn.Use(middleware.FormRateLimit(&f.RateLimit))

	fn.Post("/customers-create-or-update", func(ctx iris.Context) {
		var in service.CustomerInput
		if err := ctx.ReadJSON(&in); err != nil {
			fail(ctx, service.Validation("Invalid JSON body"))
			return
		}
		res, err := f.Customers.CreateOrUpdate(ctx.Request().Context(), in)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"success": true, "customer_id": res.CustomerID, "is_new": res.IsNew})
	})

	fn.Post("/issues-create", func(ctx iris.Context) {
		var in service.IssueInput
		if err := ctx.ReadJSON(&in); err != nil {
			fail(ctx, service.Validation("Invalid JSON body"))
			return
		}
		res, err := f.Issues.Create(ctx.Request().Context(), in)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{
			"success":           true,
			"issue_id":          res.IssueID,
			"category":          res.Category,
			"detected_category": res.DetectedCategory,
		})
	})

	fn.Post("/ai-callback", func(ctx iris.Context) {
		var req struct {
			Action  string          `json:"action"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, service.Validation("Invalid JSON body"))
			return
		}
		data, err := f.Callback.Handle(ctx.Request().Context(), req.Action, req.Payload)
		if err != nil {
			fail(ctx, err)
			return
		}
		ctx.JSON(iris.Map{"success": true, "action": req.Action, "data": data})
	})

	fn.Post("/google-sheets", func(ctx iris.Context) {
		var req struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			fail(ctx, service.Validation("Invalid JSON body"))
			return
		}
		rctx := ctx.Request().Context()
		switch req.Action {
		case "addWarranty":
			var row service.WarrantyRow
			if err := decodeData(req.Data, &row); err != nil {
				fail(ctx, err)
				return
			}
			if err := f.Sheets.AddWarranty(rctx, row); err != nil {
				fail(ctx, err)
				return
			}
			ctx.JSON(iris.Map{"success": true, "message": "Warranty registered"})
		case "addContactForm":
			var row service.ContactRow
			if err := decodeData(req.Data, &row); err != nil {
				fail(ctx, err)
				return
			}
			if err := f.Sheets.AddContactForm(rctx, row); err != nil {
				fail(ctx, err)
				return
			}
			ctx.JSON(iris.Map{"success": true, "message": "Contact form submitted"})
		case "getData":
			data, err := f.Sheets.GetData(rctx)
			if err != nil {
				fail(ctx, err)
				return
			}
			ctx.JSON(iris.Map{"success": true, "warranties": data.Warranties, "contactForms": data.ContactForms})
		default:
			fail(ctx, service.Validation("Unknown action"))
		}
	})
}

func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return service.Validation("Missing required field: data")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return service.Validation("Invalid data")
	}
	return nil
}

// fail 回调接口的错误格式 {success:false, error}
func fail(ctx iris.Context, err error) {
	status := service.StatusOf(err)
	msg := err.Error()
	if status >= iris.StatusInternalServerError {
		zap.L().Error("function failed", zap.String("path", ctx.Path()), zap.Error(err))
		if !service.IsKind(err, service.KindPersistence) {
			msg = "Internal server error"
		}
	}
	ctx.StopWithJSON(status, iris.Map{"success": false, "error": msg})
}
