package scheduler

import (
	"fmt"
	"time"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/config"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logger"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logic"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ProjectFinishJob 募资结束通知任务
//
// 定期扫描已核准且过截止日的提案，给提案者补发结束通知。
// 通知内容固定，存在同内容通知即视为已发过，任务可安全重跑
type ProjectFinishJob struct {
	db     *gorm.DB
	hub    *notify.Hub
	config *config.Config
}

// NewProjectFinishJob 创建募资结束通知任务
func NewProjectFinishJob(db *gorm.DB, hub *notify.Hub, cfg *config.Config) *ProjectFinishJob {
	return &ProjectFinishJob{
		db:     db,
		hub:    hub,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ProjectFinishJob) GetName() string {
	return "project_finish_notifier"
}

// GetSchedule 获取调度配置
func (j *ProjectFinishJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectFinishJob) Execute() {
	now := time.Now().Unix()

	// 只有核准过的提案会进入结束状态
	var projects []model.ProjectModel
	err := j.db.
		Where("end_date < ?", now).
		Where("EXISTS (SELECT 1 FROM review_log WHERE review_log.project_id = project.id AND review_log.status = ?)",
			model.ReviewStatusApproved).
		Find(&projects).Error
	if err != nil {
		logger.Error("Failed to fetch finished projects: %v", err)
		return
	}

	notificationLogic := logic.NewNotificationLogic(j.db, j.hub)
	notified := 0

	for _, project := range projects {
		content := fmt.Sprintf("您的提案「%s」募資已結束", project.Title)

		var count int64
		err := j.db.Model(&model.NotificationModel{}).
			Where("user_id = ? AND project_id = ? AND content = ?", project.UserId, project.Id, content).
			Count(&count).Error
		if err != nil {
			logger.Error("Failed to check finish notification for project %d: %v", project.Id, err)
			continue
		}
		if count > 0 {
			continue
		}

		if err := notificationLogic.Create(nil, project.UserId, project.Id, content); err != nil {
			logger.Error("Failed to create finish notification for project %d: %v", project.Id, err)
			continue
		}
		notificationLogic.Push(project.UserId)
		notified++
	}

	if notified > 0 {
		logger.Info("Finish notification sent for %d projects", notified)
	}
}
