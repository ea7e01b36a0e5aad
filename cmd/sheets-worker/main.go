package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/sheets"
	"github.com/vanshrane27/electrohub-showcase/internal/logger"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
	"github.com/vanshrane27/electrohub-showcase/internal/worker"
)

func init() {
	// 初始化监控
	_ = service.GetMonitor()
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.InitLogger(&cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zap.L().Sync()

	if !cfg.Sheets.Enabled() {
		zap.L().Fatal("sheets.spreadsheet_id and sheets.credentials_file are required")
	}
	key, err := sheets.LoadKey(cfg.Sheets.CredentialsFile)
	if err != nil {
		zap.L().Fatal("load sheets credentials failed", zap.Error(err))
	}
	client, err := sheets.NewClient(&cfg.Sheets, key, nil)
	if err != nil {
		zap.L().Fatal("create sheets client failed", zap.Error(err))
	}

	mqConn := mq.Init(&cfg.RabbitMQ)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := service.NewSheetsService(client, nil)
	consumers := []*worker.Consumer{worker.NewSheetsSync(svc), worker.NewOrderSync(svc)}

	// 每个队列独占一个 channel，Qos 按 channel 生效
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range consumers {
		c := c
		ch, err := mqConn.Channel()
		if err != nil {
			zap.L().Fatal("failed to open channel", zap.Error(err))
		}
		defer ch.Close()
		g.Go(func() error {
			return errors.Wrap(c.Run(gctx, ch), c.Queue())
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Fatal("sheets worker stopped", zap.Error(err))
	}
	zap.L().Info("sheets worker stopped", zap.Any("stats", service.GetMonitor().GetStats()))
}
