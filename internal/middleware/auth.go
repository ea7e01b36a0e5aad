package middleware

import (
	"github.com/kataras/iris/v12"

	"github.com/vanshrane27/electrohub-showcase/internal/auth"
	"github.com/vanshrane27/electrohub-showcase/internal/config"
)

// ctx.Values() 中的键
const (
	KeyUserID = "user_id"
	KeyClaims = "claims"
)

// JWTAuth 校验 Authorization 头中的 token，解析结果经 TokenCache 缓存
func JWTAuth(cfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		token := auth.BearerToken(ctx.GetHeader("Authorization"))
		if token == "" {
			ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"code": iris.StatusUnauthorized, "msg": "missing token"})
			return
		}
		claims, err := cache.Verify(ctx.Request().Context(), cfg, token)
		if err != nil {
			ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"code": iris.StatusUnauthorized, "msg": "invalid token"})
			return
		}
		ctx.Values().Set(KeyUserID, claims.UserID)
		ctx.Values().Set(KeyClaims, claims)
		ctx.Next()
	}
}

// RequireAdmin 必须在 JWTAuth 之后使用
func RequireAdmin() iris.Handler {
	return func(ctx iris.Context) {
		claims, ok := ctx.Values().Get(KeyClaims).(*auth.Claims)
		if !ok || !claims.IsAdmin {
			ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"code": iris.StatusForbidden, "msg": "admin access required"})
			return
		}
		ctx.Next()
	}
}
