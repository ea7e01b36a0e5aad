package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/user"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailExists        = errors.New("Email already exists")
	ErrMissingFields      = errors.New("name, email and password are required")
)

// State 会话状态
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Authenticator 账号校验与持久化，由用户服务实现
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
	Register(ctx context.Context, name, email, password string) (*user.User, error)
	SaveProfile(ctx context.Context, u *user.User) error
}

// Profile 资料的部分更新，nil 字段保持不变
type Profile struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// Session 一个浏览器会话的登录状态
type Session struct {
	mu      sync.Mutex
	key     string
	storage SessionStorage
	authn   Authenticator
	current *user.User
}

// OpenSession 恢复会话，storage 中没有记录时为匿名状态
func OpenSession(ctx context.Context, storage SessionStorage, authn Authenticator, key string) (*Session, error) {
	u, err := storage.Load(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	return &Session{key: key, storage: storage, authn: authn, current: u}, nil
}

// State 当前状态
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return StateAnonymous
	}
	return StateAuthenticated
}

// User 当前用户的副本，匿名时为 nil
func (s *Session) User() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsAdmin 后台入口只看这个标记
func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsAdmin
}

// Login 校验失败时保持原状态并返回错误
func (s *Session) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.authn.Authenticate(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	return s.become(ctx, u)
}

// Register 注册普通用户并直接登录
func (s *Session) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	u, err := s.authn.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.become(ctx, u)
}

func (s *Session) become(ctx context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Save(ctx, s.key, u); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	s.current = u
	cp := *u
	return &cp, nil
}

// Logout 回到匿名状态并删除持久化记录
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return s.storage.Delete(ctx, s.key)
}

// UpdateProfile 合并资料，匿名时什么都不做并返回 nil
func (s *Session) UpdateProfile(ctx context.Context, p Profile) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, nil
	}
	next := *s.current
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		next.Phone = strings.TrimSpace(*p.Phone)
	}
	if err := s.authn.SaveProfile(ctx, &next); err != nil {
		return nil, err
	}
	if err := s.storage.Save(ctx, s.key, &next); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	s.current = &next
	cp := next
	return &cp, nil
}
