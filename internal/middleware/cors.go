package middleware

import (
	"net/http"

	"github.com/kataras/iris/v12"
)

// CORS 客服函数的跨域头，预检请求直接返回
func CORS() iris.Handler {
	return func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", "*")
		ctx.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		if ctx.Method() == http.MethodOptions {
			ctx.StatusCode(http.StatusOK)
			ctx.StopExecution()
			return
		}
		ctx.Next()
	}
}
