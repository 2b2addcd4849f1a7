package scheduler

import (
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/config"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logger"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	hub       *notify.Hub
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, hub *notify.Hub, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: s,
		db:        db,
		hub:       hub,
		config:    cfg,
	}, nil
}

// Start 启动任务管理器
func Start(db *gorm.DB, hub *notify.Hub, cfg *config.Config) *Manager {
	manager, err := NewManager(db, hub, cfg)
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.registerJob(NewProjectFinishJob(m.db, m.hub, m.config))
}

type job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

func (m *Manager) registerJob(j job) {
	_, err := m.scheduler.NewJob(
		j.GetSchedule(),
		gocron.NewTask(j.Execute),
		gocron.WithName(j.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", j.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
