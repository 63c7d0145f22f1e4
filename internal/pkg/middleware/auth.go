package middleware

import (
	"net/http"
	"strings"

	"studyshare/pkg/response"
	"studyshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

const ctxKeyAuthSubject = "authSubject"

// AuthMiddleware JWT认证中间件
// 只负责校验 token 并提取外部身份标识（subject），
// 本地用户行的解析（含未注册判断）在 service 层完成
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := subjectFromHeader(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or missing token")
			c.Abort()
			return
		}

		c.Set(ctxKeyAuthSubject, subject)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证
// 浏览/下载等端点匿名也可访问，带合法 token 时额外记录事件归属
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if subject, ok := subjectFromHeader(c); ok {
			c.Set(ctxKeyAuthSubject, subject)
		}
		c.Next()
	}
}

func subjectFromHeader(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	// 检查格式 "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// CurrentSubject 从上下文取出当前请求的外部身份标识，未登录返回空串
func CurrentSubject(c *gin.Context) string {
	val, _ := c.Get(ctxKeyAuthSubject)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
