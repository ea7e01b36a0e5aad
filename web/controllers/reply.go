package controllers

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"
	"go.uber.org/zap"

	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

// Reply 成功响应 {"code":0,"data":...}
func Reply(ctx iris.Context, data any) {
	_ = ctx.JSON(iris.Map{"code": 0, "data": data})
}

// ReplyError 按业务错误分类返回状态码，未分类错误不向外暴露细节
func ReplyError(ctx iris.Context, err error) {
	status := service.StatusOf(err)
	msg := err.Error()
	if !service.IsKind(err, service.KindPersistence) && status == iris.StatusInternalServerError {
		msg = "Internal server error"
	}
	if status >= iris.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("path", ctx.Path()), zap.Error(err))
	}
	ctx.StopWithJSON(status, iris.Map{"code": status, "msg": msg})
}

// BadRequest 请求体无法解析等
func BadRequest(ctx iris.Context, msg string) {
	ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"code": iris.StatusBadRequest, "msg": msg})
}

// SessionID 浏览器会话 id，来自 sessions 中间件写入的 cookie
func SessionID(ctx iris.Context) string {
	if s := sessions.Get(ctx); s != nil {
		return s.ID()
	}
	return ""
}
