package postgres

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

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
)

var (
	db   *gorm.DB
	once sync.Once
)

// Open 按配置的驱动打开连接，默认 postgres
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Driver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

// Migrate 自动迁移全部表结构
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&product.Product{},
		&user.User{},
		&order.Order{},
		&customer.Customer{},
		&issue.Issue{},
		&warranty.Warranty{},
		&booking.Booking{},
		&registration.Registration{},
		&contact.Form{},
	)
}

// Init 初始化全局 GORM 实例并自动迁移表结构
func Init(cfg *config.DatabaseConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = Open(cfg)
		if err != nil {
			zap.L().Fatal("failed to connect database", zap.String("driver", cfg.Driver), zap.Error(err))
		}
		if err = Migrate(db); err != nil {
			zap.L().Fatal("auto migrate failed", zap.Error(err))
		}
	})
	return db
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}

// maybe 把 gorm 的 not found 转为 nil, nil
func maybe[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// updateStatus 先查出记录再更新 status，不依赖 RowsAffected：
// MySQL 在新旧值相同时返回 0 行受影响
func updateStatus[T any](ctx context.Context, db *gorm.DB, id string, status any) (*T, error) {
	var v T
	err := db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&v).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &v, nil
}
