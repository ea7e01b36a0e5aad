package server

import (
	"time"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/cart"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/booking"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/contact"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/customer"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/issue"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/registration"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/user"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/warranty"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/redis"
	"github.com/vanshrane27/electrohub-showcase/internal/repository/memory"
	"github.com/vanshrane27/electrohub-showcase/internal/repository/postgres"
)

// Repos 全部仓储
type Repos struct {
	Products      product.Repository
	Users         user.Repository
	Orders        order.Repository
	Customers     customer.Repository
	Issues        issue.Repository
	Warranties    warranty.Repository
	Bookings      booking.Repository
	Registrations registration.Repository
	Contacts      contact.Repository
}

// NewRepos 基于同一个 gorm 连接创建仓储
func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Products:      postgres.NewProductRepository(db),
		Users:         postgres.NewUserRepository(db),
		Orders:        postgres.NewOrderRepository(db),
		Customers:     postgres.NewCustomerRepository(db),
		Issues:        postgres.NewIssueRepository(db),
		Warranties:    postgres.NewWarrantyRepository(db),
		Bookings:      postgres.NewBookingRepository(db),
		Registrations: postgres.NewRegistrationRepository(db),
		Contacts:      postgres.NewContactRepository(db),
	}
}

// MemoryRepos 进程内仓储，重启即丢失
func MemoryRepos() Repos {
	return Repos{
		Products:      memory.NewProductRepository(),
		Users:         memory.NewUserRepository(),
		Orders:        memory.NewOrderRepository(),
		Customers:     memory.NewCustomerRepository(),
		Issues:        memory.NewIssueRepository(),
		Warranties:    memory.NewWarrantyRepository(),
		Bookings:      memory.NewBookingRepository(),
		Registrations: memory.NewRegistrationRepository(),
		Contacts:      memory.NewContactRepository(),
	}
}

// OpenRepos database.driver 为 memory 时不连接数据库
func OpenRepos(cfg *config.Config) Repos {
	if cfg.Database.Driver == "memory" {
		zap.L().Warn("using in-memory repositories, data is lost on restart")
		return MemoryRepos()
	}
	return NewRepos(postgres.Init(&cfg.Database))
}

// redisClient storage.backend 为 memory 时不连接 Redis
func redisClient(cfg *config.Config) radix.Client {
	if cfg.Storage.Backend == "memory" {
		return nil
	}
	return redis.Init(&cfg.Redis)
}

// publisher 未配置 RabbitMQ 时消息直接丢弃
func publisher(cfg *config.Config) mq.Publisher {
	if cfg.RabbitMQ.URL == "" {
		zap.L().Warn("rabbitmq not configured, events will be dropped")
		return mq.NopPublisher{}
	}
	p, err := mq.NewPublisher(mq.Init(&cfg.RabbitMQ))
	if err != nil {
		zap.L().Fatal("open rabbitmq channel failed", zap.Error(err))
	}
	return p
}

// cartStorage 购物车存储后端
func cartStorage(rc radix.Client) cart.Storage {
	if rc == nil {
		return cart.NewMemoryStorage()
	}
	return cart.NewRedisStorage(rc, cart.DefaultTTL)
}

// sessionStorage 登录会话存储后端
func sessionStorage(rc radix.Client) auth.SessionStorage {
	if rc == nil {
		return auth.NewMemorySessionStorage()
	}
	return auth.NewRedisSessionStorage(rc, 24*time.Hour)
}

// tokenCache 后台 JWT 解析缓存
func tokenCache(cfg *config.Config, rc radix.Client) *auth.TokenCache {
	ring := auth.NewConsistentHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	return auth.NewTokenCache(rc, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)
}
