package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"gorm.io/gorm"
)

// ReviewLogic 审核流程：写审核记录、产生通知、推送未读数
type ReviewLogic struct {
	db            *gorm.DB
	notifications *NotificationLogic
}

// NewReviewLogic 创建审核业务逻辑
func NewReviewLogic(db *gorm.DB, hub *notify.Hub) *ReviewLogic {
	return &ReviewLogic{
		db:            db,
		notifications: NewNotificationLogic(db, hub),
	}
}

// Decide 管理员审核提案
//
// 核准采用条件写入（不存在核准记录才插入），一个提案一生至多核准一次；
// 通知写入与审核记录同事务，推送在提交后异步执行且不影响本请求
func (r *ReviewLogic) Decide(projectId int64, approve int, content string, adminId int64) error {
	if approve != model.ReviewStatusApproved && approve != model.ReviewStatusRejected {
		return apperr.Validation("審核狀態碼錯誤")
	}
	if approve == model.ReviewStatusRejected && strings.TrimSpace(content) == "" {
		return apperr.Validation("請輸入否准理由")
	}

	var project model.ProjectModel
	if err := r.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("查無此提案")
		}
		return apperr.Unexpected(err)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if approve == model.ReviewStatusApproved {
			if err := r.insertApproval(tx, projectId, content); err != nil {
				return err
			}
		} else {
			entry := model.ReviewLogModel{
				ProjectId: projectId,
				Status:    model.ReviewStatusRejected,
				Content:   strings.TrimSpace(content),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return r.notifications.Create(tx, project.UserId, projectId, reviewMessage(&project, approve, content))
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperr.Unexpected(err)
	}

	r.notifications.Push(project.UserId)
	return nil
}

// insertApproval 条件写入核准记录，已核准过则报冲突
func (r *ReviewLogic) insertApproval(tx *gorm.DB, projectId int64, content string) error {
	now := time.Now().Unix()
	result := tx.Exec(
		`INSERT INTO review_log (project_id, status, content, create_time, update_time) `+
			`SELECT ?, ?, ?, ?, ? `+
			`WHERE NOT EXISTS (SELECT 1 FROM review_log WHERE project_id = ? AND status = ?)`,
		projectId, model.ReviewStatusApproved, strings.TrimSpace(content), now, now,
		projectId, model.ReviewStatusApproved,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.Conflict("該提案已核准")
	}
	return nil
}

func reviewMessage(project *model.ProjectModel, approve int, content string) string {
	if approve == model.ReviewStatusApproved {
		return fmt.Sprintf("您的提案「%s」已通過審核", project.Title)
	}
	return fmt.Sprintf("您的提案「%s」未通過審核：%s", project.Title, strings.TrimSpace(content))
}
