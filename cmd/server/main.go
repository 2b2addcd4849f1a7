package main

import (
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/auth"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/config"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/database"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logger"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logic"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/payment"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/router"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化 redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 初始化金流加密器
	crypto, err := payment.NewTradeCrypto(cfg.Payment)
	if err != nil {
		logger.Fatal("Failed to initialize payment crypto: %v", err)
	}

	jwtManager := auth.NewManager(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	orderStore := payment.NewOrderStore(rdb, cfg.Payment.OrderTTL)

	// 未读通知推送中心
	notificationLogic := logic.NewNotificationLogic(db, nil)
	hub, err := notify.NewHub(0, notificationLogic.UnreadCount)
	if err != nil {
		logger.Fatal("Failed to initialize notify hub: %v", err)
	}
	defer hub.Release()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(router.Deps{
		DB:         db,
		JWTManager: jwtManager,
		Hub:        hub,
		Crypto:     crypto,
		OrderStore: orderStore,
		Config:     cfg,
	})

	// 启动定时任务
	manager := scheduler.Start(db, hub, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var (
		l   *logger.Logger
		err error
	)
	if cfg.Output == "file" {
		l, err = logger.NewWithRotation(level, logger.RotateConfig{
			Filename: cfg.File,
			Compress: true,
		})
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
