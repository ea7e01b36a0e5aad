package controllers

import (
	"net/http"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/user"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

const tokenCookie = "token"

// UserController 登录、注册、退出与资料维护，会话状态存放在 SessionStorage 中
type UserController struct {
	userService *service.UserService
	sessions    auth.SessionStorage
	carts       *service.CartService
}

// NewUserController 构造函数，供路由层复用同一套逻辑。
func NewUserController(userSvc *service.UserService, store auth.SessionStorage, carts *service.CartService) *UserController {
	return &UserController{userService: userSvc, sessions: store, carts: carts}
}

func (c *UserController) open(ctx iris.Context) (*auth.Session, bool) {
	s, err := auth.OpenSession(ctx.Request().Context(), c.sessions, c.userService, SessionID(ctx))
	if err != nil {
		service.GetMonitor().RecordRedisError()
		ReplyError(ctx, service.Persistence("Failed to load session", err))
		return nil, false
	}
	return s, true
}

// authenticated 登录/注册成功后签发 token 并写 cookie
func (c *UserController) authenticated(ctx iris.Context, u *user.User) {
	token, err := c.userService.IssueToken(u)
	if err != nil {
		ReplyError(ctx, err)
		return
	}
	ctx.SetCookie(&http.Cookie{Name: tokenCookie, Value: token, Path: "/", HttpOnly: true})
	Reply(ctx, iris.Map{"user": u, "token": token})
}

// PostLogin 处理 POST /api/auth/login
func (c *UserController) PostLogin(ctx iris.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		BadRequest(ctx, "Invalid request body")
		return
	}
	s, ok := c.open(ctx)
	if !ok {
		return
	}
	u, err := s.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		ReplyError(ctx, err)
		return
	}
	c.authenticated(ctx, u)
}

// PostRegister 处理 POST /api/auth/register
func (c *UserController) PostRegister(ctx iris.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		BadRequest(ctx, "Invalid request body")
		return
	}
	s, ok := c.open(ctx)
	if !ok {
		return
	}
	u, err := s.Register(ctx.Request().Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, auth.ErrMissingFields) {
		BadRequest(ctx, "Name, email and password are required")
		return
	}
	if err != nil {
		ReplyError(ctx, err)
		return
	}
	c.authenticated(ctx, u)
}

// PostLogout 退出登录并清空购物车
func (c *UserController) PostLogout(ctx iris.Context) {
	s, ok := c.open(ctx)
	if !ok {
		return
	}
	if err := s.Logout(ctx.Request().Context()); err != nil {
		ReplyError(ctx, service.Persistence("Failed to end session", err))
		return
	}
	if cart, err := c.carts.Open(ctx.Request().Context(), SessionID(ctx)); err == nil {
		_ = c.carts.Clear(ctx.Request().Context(), cart)
	}
	ctx.SetCookie(&http.Cookie{Name: tokenCookie, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	Reply(ctx, iris.Map{"state": auth.StateAnonymous.String()})
}

// GetMe 当前会话状态
func (c *UserController) GetMe(ctx iris.Context) {
	s, ok := c.open(ctx)
	if !ok {
		return
	}
	Reply(ctx, iris.Map{"state": s.State().String(), "user": s.User()})
}

// PutProfile 合并姓名/电话，未登录时不做任何修改
func (c *UserController) PutProfile(ctx iris.Context) {
	var p auth.Profile
	if err := ctx.ReadJSON(&p); err != nil {
		BadRequest(ctx, "Invalid request body")
		return
	}
	s, ok := c.open(ctx)
	if !ok {
		return
	}
	u, err := s.UpdateProfile(ctx.Request().Context(), p)
	if err != nil {
		ReplyError(ctx, err)
		return
	}
	Reply(ctx, iris.Map{"state": s.State().String(), "user": u})
}

// CurrentUser 当前登录用户，匿名返回 nil
func (c *UserController) CurrentUser(ctx iris.Context) (*user.User, error) {
	u, err := c.sessions.Load(ctx.Request().Context(), SessionID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	return u, nil
}
