package middleware

import (
	"net/http"
	"strings"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/auth"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserIdKey = "userId"
	ContextAuthKey   = "auth"
	ContextIsLogin   = "isLogin"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
}

// RequireAuth 登入检查，注入 userId / auth
func RequireAuth(jwtManager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "身分驗證失敗，請重新登入")
			return
		}

		claims, err := jwtManager.Parse(token)
		if err != nil {
			abortUnauthorized(c, "token 已失效，請重新登入")
			return
		}

		c.Set(ContextUserIdKey, claims.UserId)
		c.Set(ContextAuthKey, claims.Auth)
		c.Next()
	}
}

// RequireAdmin 管理员检查，须先经过 RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt(ContextAuthKey) != model.AuthAdmin {
			abortUnauthorized(c, "身分驗證失敗，僅限管理員")
			return
		}
		c.Next()
	}
}

// ParseToken 可选登入，解析失败不拦截
func ParseToken(jwtManager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Set(ContextIsLogin, false)
			c.Next()
			return
		}

		claims, err := jwtManager.Parse(token)
		if err != nil {
			c.Set(ContextIsLogin, false)
			c.Next()
			return
		}

		c.Set(ContextIsLogin, true)
		c.Set(ContextUserIdKey, claims.UserId)
		c.Set(ContextAuthKey, claims.Auth)
		c.Next()
	}
}

// UserId 取出当前登入用户id，0 表示未登入
func UserId(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserIdKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
