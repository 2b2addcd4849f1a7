package logic

import (
	"strings"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"gorm.io/gorm"
)

// NotificationLogic 通知业务逻辑
type NotificationLogic struct {
	db  *gorm.DB
	hub *notify.Hub
}

// NewNotificationLogic 创建通知业务逻辑，hub 可为 nil（不推送）
func NewNotificationLogic(db *gorm.DB, hub *notify.Hub) *NotificationLogic {
	return &NotificationLogic{db: db, hub: hub}
}

// Create 写入通知
func (n *NotificationLogic) Create(tx *gorm.DB, userId, projectId int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return apperr.Validation("請輸入通知內容")
	}
	if tx == nil {
		tx = n.db
	}
	return tx.Create(&model.NotificationModel{
		UserId:    userId,
		ProjectId: projectId,
		Content:   content,
	}).Error
}

// Push 推送未读数，fire-and-forget
func (n *NotificationLogic) Push(userId int64) {
	if n.hub != nil {
		n.hub.PushUnreadCount(userId)
	}
}

// UnreadCount 未读通知数
func (n *NotificationLogic) UnreadCount(userId int64) (int64, error) {
	var count int64
	err := n.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Unexpected(err)
	}
	return count, nil
}

// NotificationItem 通知列表单行
type NotificationItem struct {
	Id         int64  `json:"id"`
	Content    string `json:"content"`
	IsRead     bool   `json:"isRead"`
	CreateTime int64  `json:"createTime"`
	Project    struct {
		Id       int64  `json:"id"`
		Title    string `json:"title"`
		CoverUrl string `json:"coverUrl"`
	} `json:"project"`
}

// List 通知列表，新的在前；返回的页会被标记为已读，超页回 404
func (n *NotificationLogic) List(userId int64, req pagination.Request) ([]NotificationItem, pagination.Meta, int64, error) {
	query := n.db.Model(&model.NotificationModel{}).Where("user_id = ?", userId)

	rows, meta, err := pagination.Paginate[model.NotificationModel](query,
		"create_time DESC, id DESC", req, pagination.Strict)
	if err != nil {
		return nil, pagination.Meta{}, 0, err
	}

	items := make([]NotificationItem, len(rows))
	readIds := make([]int64, 0, len(rows))
	for i, row := range rows {
		items[i] = NotificationItem{
			Id:         row.Id,
			Content:    row.Content,
			IsRead:     row.IsRead,
			CreateTime: row.CreateTime,
		}
		items[i].Project.Id = row.ProjectId
		if !row.IsRead {
			readIds = append(readIds, row.Id)
		}
	}

	// 补提案标题与封面
	if len(rows) > 0 {
		ids := make([]int64, len(rows))
		for i, row := range rows {
			ids[i] = row.ProjectId
		}
		var projects []model.ProjectModel
		if err := n.db.Where("id IN ?", ids).Find(&projects).Error; err != nil {
			return nil, pagination.Meta{}, 0, apperr.Unexpected(err)
		}
		byId := make(map[int64]model.ProjectModel, len(projects))
		for _, project := range projects {
			byId[project.Id] = project
		}
		for i := range items {
			if project, ok := byId[items[i].Project.Id]; ok {
				items[i].Project.Title = project.Title
				items[i].Project.CoverUrl = project.CoverUrl
			}
		}
	}

	// 当前页标记已读
	if len(readIds) > 0 {
		if err := n.db.Model(&model.NotificationModel{}).
			Where("id IN ?", readIds).
			Update("is_read", true).Error; err != nil {
			return nil, pagination.Meta{}, 0, apperr.Unexpected(err)
		}
	}

	unread, err := n.UnreadCount(userId)
	if err != nil {
		return nil, pagination.Meta{}, 0, err
	}

	return items, meta, unread, nil
}
