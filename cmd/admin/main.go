package main

import (
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/logger"
	"github.com/vanshrane27/electrohub-showcase/internal/server"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.ValidateJWT(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.InitLogger(&cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zap.L().Sync()

	app := iris.New()
	server.RegisterAdminRoutes(app, cfg)

	addr := cfg.AdminServer.Addr()
	zap.L().Info("admin server listening", zap.String("addr", addr))
	if err := app.Run(iris.Addr(addr)); err != nil {
		zap.L().Fatal("failed to run admin server", zap.Error(err))
	}
}
