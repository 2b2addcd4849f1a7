package logic

import (
	"errors"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"gorm.io/gorm"
)

// TrackLogic 提案追踪业务逻辑
type TrackLogic struct {
	db       *gorm.DB
	projects *ProjectLogic
}

// NewTrackLogic 创建追踪业务逻辑
func NewTrackLogic(db *gorm.DB) *TrackLogic {
	return &TrackLogic{db: db, projects: NewProjectLogic(db)}
}

// Toggle 追踪/取消追踪，返回切换后的追踪状态
func (t *TrackLogic) Toggle(userId, projectId int64) (bool, error) {
	var project model.ProjectModel
	if err := t.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("查無此提案")
		}
		return false, apperr.Unexpected(err)
	}

	var track model.TrackModel
	err := t.db.Where("user_id = ? AND project_id = ?", userId, projectId).First(&track).Error
	if err == nil {
		if err := t.db.Delete(&track).Error; err != nil {
			return false, apperr.Unexpected(err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, apperr.Unexpected(err)
	}

	if err := t.db.Create(&model.TrackModel{UserId: userId, ProjectId: projectId}).Error; err != nil {
		return false, apperr.Unexpected(err)
	}
	return true, nil
}

// List 我追踪的提案，追踪时间新的在前，超页回第一页
func (t *TrackLogic) List(userId int64, req pagination.Request) ([]PublicProjectItem, pagination.Meta, error) {
	query := t.db.Model(&model.ProjectModel{}).
		Joins("JOIN track ON track.project_id = project.id").
		Where("track.user_id = ?", userId)

	rows, meta, err := pagination.Paginate[model.ProjectModel](query,
		"track.create_time DESC, track.id DESC", req, pagination.ClampFirstPage)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	items, err := t.projects.buildPublicItems(rows, userId)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, meta, nil
}
