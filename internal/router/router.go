package router

import (
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/auth"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/config"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/handler"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/middleware"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps 路由装配所需的共享组件
type Deps struct {
	DB         *gorm.DB
	JWTManager *auth.Manager
	Hub        *notify.Hub
	Crypto     *payment.TradeCrypto
	OrderStore *payment.OrderStore
	Config     *config.Config
}

func Setup(deps Deps) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "movemove-api",
		})
	})

	userHandler := handler.NewUserHandler(deps.DB, deps.JWTManager)
	projectHandler := handler.NewProjectHandler(deps.DB)
	memberHandler := handler.NewMemberHandler(deps.DB)
	adminHandler := handler.NewAdminHandler(deps.DB, deps.Hub)
	paymentHandler := handler.NewPaymentHandler(deps.DB, deps.Crypto, deps.OrderStore, deps.Hub)
	notificationHandler := handler.NewNotificationHandler(deps.DB, deps.Hub)

	requireAuth := middleware.RequireAuth(deps.JWTManager)
	parseToken := middleware.ParseToken(deps.JWTManager)

	// 注册登入
	users := r.Group("/users")
	{
		users.POST("/sign-up", userHandler.SignUp)
		users.POST("/login", userHandler.Login)
	}

	// 首页，登入与否皆可浏览，登入时回传追踪状态
	r.GET("/info", parseToken, projectHandler.Info)

	// 公开提案
	projects := r.Group("/projects")
	{
		projects.GET("", parseToken, projectHandler.List)
		projects.GET("/:id", parseToken, projectHandler.Detail)
		projects.POST("", requireAuth, projectHandler.Create)
	}

	// 会员中心
	member := r.Group("/member", requireAuth)
	{
		member.GET("/projects", memberHandler.Projects)
		member.GET("/project/:id", memberHandler.Project)
		member.PUT("/project/:id", memberHandler.UpdateProject)
		member.POST("/collection", memberHandler.ToggleCollection)
		member.GET("/collection", memberHandler.Collections)
		member.GET("/notifications", notificationHandler.List)
		member.GET("/notifications/stream", notificationHandler.Stream)
	}

	// 管理后台
	admin := r.Group("/admin", requireAuth, middleware.RequireAdmin())
	{
		admin.GET("/projects", adminHandler.Projects)
		admin.GET("/projects/:id", adminHandler.Project)
		admin.POST("/projects/:id", adminHandler.Decide)
	}

	// 金流
	paymentGroup := r.Group("/payment")
	{
		paymentGroup.POST("/support", requireAuth, paymentHandler.Support)
		// 供应商回调，无法携带用户凭证
		paymentGroup.POST("/notify", paymentHandler.Notify)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
