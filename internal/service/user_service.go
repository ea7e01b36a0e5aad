package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/user"
)

// demoAccount 启动时保证存在的演示账号
type demoAccount struct {
	email, password, name string
	admin                 bool
}

var demoAccounts = []demoAccount{
	{email: "user@example.com", password: "password", name: "John Doe"},
	{email: "admin", password: "admin", name: "Admin User", admin: true},
}

// UserService 账号注册、登录校验与资料保存，实现 auth.Authenticator
type UserService struct {
	repo user.Repository
	jwt  *config.JWTConfig
}

// NewUserService 创建用户服务
func NewUserService(repo user.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

var _ auth.Authenticator = (*UserService)(nil)

func hashPassword(raw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(h), nil
}

// Authenticate 校验邮箱和密码，失败统一返回 Invalid email or password
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, Persistence("Login failed. Please try again.", err)
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, &Error{Kind: KindUnauthorized, Msg: auth.ErrInvalidCredentials.Error(), Err: auth.ErrInvalidCredentials}
	}
	return u, nil
}

// Register 注册普通用户，邮箱已存在返回 Conflict
func (s *UserService) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, Validation("Invalid email address")
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, Persistence("Registration failed. Please try again.", err)
	}
	if existing != nil {
		return nil, &Error{Kind: KindConflict, Msg: auth.ErrEmailExists.Error(), Err: auth.ErrEmailExists}
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, Persistence("Registration failed. Please try again.", err)
	}
	zap.L().Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// SaveProfile 只更新姓名和电话，其余字段以数据库为准
func (s *UserService) SaveProfile(ctx context.Context, u *user.User) error {
	stored, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return Persistence("Failed to update profile", err)
	}
	if stored == nil {
		return NotFound("User not found")
	}
	stored.Name = u.Name
	stored.Phone = u.Phone
	if err := s.repo.Update(ctx, stored); err != nil {
		return Persistence("Failed to update profile", err)
	}
	return nil
}

// IssueToken 为已登录用户签发 JWT
func (s *UserService) IssueToken(u *user.User) (string, error) {
	return auth.GenerateToken(s.jwt, u)
}

// ListAll 全部用户
func (s *UserService) ListAll(ctx context.Context) ([]*user.User, error) {
	return s.repo.ListAll(ctx)
}

// SeedDefaults 保证演示账号存在，已存在的不覆盖
func (s *UserService) SeedDefaults(ctx context.Context) error {
	for _, a := range demoAccounts {
		existing, err := s.repo.GetByEmail(ctx, a.email)
		if err != nil {
			return errors.Wrapf(err, "lookup %s", a.email)
		}
		if existing != nil {
			continue
		}
		hash, err := hashPassword(a.password)
		if err != nil {
			return err
		}
		u := &user.User{ID: uuid.NewString(), Email: a.email, Name: a.name, IsAdmin: a.admin, PasswordHash: hash}
		if err := s.repo.Create(ctx, u); err != nil {
			return errors.Wrapf(err, "create %s", a.email)
		}
		zap.L().Info("demo account created", zap.String("email", a.email), zap.Bool("admin", a.admin))
	}
	return nil
}
