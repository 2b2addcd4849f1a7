package logic

import (
	"math/rand"
	"time"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"gorm.io/gorm"
)

// HomeLogic 首页聚合
type HomeLogic struct {
	db       *gorm.DB
	projects *ProjectLogic
	sponsors *SponsorLogic
}

// NewHomeLogic 创建首页业务逻辑
func NewHomeLogic(db *gorm.DB) *HomeLogic {
	return &HomeLogic{
		db:       db,
		projects: NewProjectLogic(db),
		sponsors: NewSponsorLogic(db),
	}
}

// HomeInfo 首页数据
type HomeInfo struct {
	HotProjects       []PublicProjectItem `json:"hotProjects"`
	RecommendProjects []PublicProjectItem `json:"recommendProjects"`
	SuccessProjects   []PublicProjectItem `json:"successProjects"`
	Achievements      Achievements        `json:"achievements"`
}

// Info 取首页数据：热门（达成率）、最新（开始日期）、
// 达标案例（随机4件）与平台成就。登入时附带追踪状态
func (h *HomeLogic) Info(viewerId int64) (*HomeInfo, error) {
	now := time.Now().Unix()

	// 募资期间内且曾核准
	var active []model.ProjectModel
	err := h.db.Model(&model.ProjectModel{}).
		Where(approvedExists).
		Where("start_date < ? AND end_date > ?", now, now).
		Find(&active).Error
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	activeItems, err := h.projects.buildPublicItems(active, viewerId)
	if err != nil {
		return nil, err
	}

	hot := append([]PublicProjectItem(nil), activeItems...)
	sortItemsByPercentage(hot)
	if len(hot) > 10 {
		hot = hot[:10]
	}

	recommend := append([]PublicProjectItem(nil), activeItems...)
	sortItemsByStartDate(recommend)
	if len(recommend) > 6 {
		recommend = recommend[:6]
	}

	// 达标案例不限募资期间
	var approved []model.ProjectModel
	if err := h.db.Model(&model.ProjectModel{}).Where(approvedExists).Find(&approved).Error; err != nil {
		return nil, apperr.Unexpected(err)
	}
	approvedItems, err := h.projects.buildPublicItems(approved, viewerId)
	if err != nil {
		return nil, err
	}

	success := make([]PublicProjectItem, 0, len(approvedItems))
	for _, item := range approvedItems {
		if item.TargetMoney > 0 && item.AchievedMoney >= item.TargetMoney {
			success = append(success, item)
		}
	}
	rand.Shuffle(len(success), func(i, j int) {
		success[i], success[j] = success[j], success[i]
	})
	if len(success) > 4 {
		success = success[:4]
	}

	achievements, err := h.sponsors.PlatformAchievements()
	if err != nil {
		return nil, err
	}

	return &HomeInfo{
		HotProjects:       hot,
		RecommendProjects: recommend,
		SuccessProjects:   success,
		Achievements:      achievements,
	}, nil
}
