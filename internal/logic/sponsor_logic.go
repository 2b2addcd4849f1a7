package logic

import (
	"errors"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"gorm.io/gorm"
)

// SponsorLogic 赞助记录业务逻辑
type SponsorLogic struct {
	db *gorm.DB
}

// NewSponsorLogic 创建赞助记录业务逻辑
func NewSponsorLogic(db *gorm.DB) *SponsorLogic {
	return &SponsorLogic{db: db}
}

// FundingStat 单个提案的募资聚合
type FundingStat struct {
	ProjectId     int64 `json:"projectId"`
	AchievedMoney int64 `json:"achievedMoney"`
	SponsorCount  int64 `json:"sponsorCount"`
}

// Validate 校验赞助参数与提案存在性
func (s *SponsorLogic) Validate(record *model.SponsorModel) error {
	if record.ProjectId == 0 {
		return apperr.Validation("請輸入提案id")
	}
	if record.Money <= 0 {
		return apperr.Validation("請輸入贊助金額")
	}
	if record.UserName == "" {
		return apperr.Validation("請輸入贊助者名稱")
	}
	if record.Phone == "" {
		return apperr.Validation("請輸入贊助者聯絡電話")
	}
	if record.IsNeedFeedback {
		if record.Receiver == "" {
			return apperr.Validation("請輸入收件人名稱")
		}
		if record.ReceiverPhone == "" {
			return apperr.Validation("請輸入收件人電話")
		}
		if record.Address == "" {
			return apperr.Validation("請輸入收件地址")
		}
	}

	var project model.ProjectModel
	if err := s.db.First(&project, record.ProjectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("查無該提案")
		}
		return apperr.Unexpected(err)
	}
	return nil
}

// Create 写入赞助记录
func (s *SponsorLogic) Create(record *model.SponsorModel) error {
	if err := s.Validate(record); err != nil {
		return err
	}
	if err := s.db.Create(record).Error; err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

// StatsForProjects 聚合指定提案的已筹金额与赞助人次
//
// 只对当前分页窗口内的提案做聚合，避免扫描未展示页的赞助记录
func (s *SponsorLogic) StatsForProjects(projectIds []int64) (map[int64]FundingStat, error) {
	stats := make(map[int64]FundingStat, len(projectIds))
	if len(projectIds) == 0 {
		return stats, nil
	}

	var rows []FundingStat
	err := s.db.Model(&model.SponsorModel{}).
		Select("project_id, COALESCE(SUM(money), 0) AS achieved_money, COUNT(*) AS sponsor_count").
		Where("project_id IN ?", projectIds).
		Group("project_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	for _, row := range rows {
		stats[row.ProjectId] = row
	}
	return stats, nil
}

// Achievements 平台总成就数据
type Achievements struct {
	ProjectTotal int64 `json:"projectTotal"`
	AmountTotal  int64 `json:"amountTotal"`
	PeopleTotal  int64 `json:"peopleTotal"`
}

// PlatformAchievements 首页成就统计
func (s *SponsorLogic) PlatformAchievements() (Achievements, error) {
	var result Achievements

	if err := s.db.Model(&model.ProjectModel{}).Count(&result.ProjectTotal).Error; err != nil {
		return result, apperr.Unexpected(err)
	}

	if err := s.db.Model(&model.SponsorModel{}).
		Select("COALESCE(SUM(money), 0)").
		Scan(&result.AmountTotal).Error; err != nil {
		return result, apperr.Unexpected(err)
	}

	if err := s.db.Model(&model.SponsorModel{}).
		Distinct("user_id").
		Count(&result.PeopleTotal).Error; err != nil {
		return result, apperr.Unexpected(err)
	}

	return result, nil
}
