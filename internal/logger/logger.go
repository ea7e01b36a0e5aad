package logger

import (
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
)

// InitLogger 初始化全局 zap 日志，之后统一通过 zap.L() 使用
func InitLogger(cfg *config.LogConfig) error {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	l, err := zc.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	return nil
}

// AccessLog 请求日志中间件
func AccessLog() iris.Handler {
	return func(ctx iris.Context) {
		start := time.Now()
		ctx.Next()
		zap.L().Info("request",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Int("status", ctx.GetStatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
