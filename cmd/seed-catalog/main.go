package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/catalog"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/logger"
	"github.com/vanshrane27/electrohub-showcase/internal/server"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

// 把内置商品目录和演示账号写入数据库，可重复执行
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.InitLogger(&cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zap.L().Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repos := server.OpenRepos(cfg)
	productSvc := service.NewProductService(catalog.NewStore(nil), repos.Products)
	n, err := productSvc.SeedDatabase(ctx)
	if err != nil {
		zap.L().Fatal("seed products failed", zap.Error(err))
	}
	if err := service.NewUserService(repos.Users, &cfg.JWT).SeedDefaults(ctx); err != nil {
		zap.L().Fatal("seed demo accounts failed", zap.Error(err))
	}
	zap.L().Info("seed done", zap.Int("products", n))
}
