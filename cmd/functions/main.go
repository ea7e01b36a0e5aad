package main

import (
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/logger"
	"github.com/vanshrane27/electrohub-showcase/internal/server"
)

// 客服相关的回调接口，供 n8n 与 AI 助手调用
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.InitLogger(&cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zap.L().Sync()

	app := iris.New()
	server.RegisterFunctionRoutes(app, cfg)

	addr := cfg.FunctionsServer.Addr()
	zap.L().Info("functions server listening", zap.String("addr", addr))
	if err := app.Run(iris.Addr(addr)); err != nil {
		zap.L().Fatal("failed to run functions server", zap.Error(err))
	}
}
