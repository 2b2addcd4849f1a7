package logic

import (
	"errors"
	"sort"
	"time"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"gorm.io/gorm"
)

// 提案送审需距今至少 10 天
const minStartLeadDays = 10

// 最新一笔审核记录，同秒按id取后写入的
const latestReviewJoin = `JOIN review_log rl ON rl.project_id = project.id AND rl.id = (` +
	`SELECT rl2.id FROM review_log rl2 WHERE rl2.project_id = project.id ` +
	`ORDER BY rl2.create_time DESC, rl2.id DESC LIMIT 1)`

// 提案曾核准（核准一生至多一次，见 ReviewLogic）
const approvedExists = `EXISTS (SELECT 1 FROM review_log ` +
	`WHERE review_log.project_id = project.id AND review_log.status = 1)`

// ProjectLogic 提案业务逻辑
type ProjectLogic struct {
	db       *gorm.DB
	sponsors *SponsorLogic
}

// NewProjectLogic 创建提案业务逻辑
func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db, sponsors: NewSponsorLogic(db)}
}

// ProjectInput 提案送审/编辑字段
type ProjectInput struct {
	Title       string `json:"title"`
	TeamName    string `json:"teamName"`
	Introduce   string `json:"introduce"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CategoryKey int    `json:"categoryKey"`

	TargetMoney int64 `json:"targetMoney"`
	StartDate   int64 `json:"startDate"`
	EndDate     int64 `json:"endDate"`

	Describe   string `json:"describe"`
	Content    string `json:"content"`
	CoverUrl   string `json:"coverUrl"`
	VideoUrl   string `json:"videoUrl"`
	RelatedUrl string `json:"relatedUrl"`

	FeedbackItem  string `json:"feedbackItem"`
	FeedbackUrl   string `json:"feedbackUrl"`
	FeedbackMoney int64  `json:"feedbackMoney"`
	FeedbackDate  int64  `json:"feedbackDate"`
}

func validateRequired(input *ProjectInput) error {
	switch {
	case input.TeamName == "":
		return apperr.Validation("請輸入提案人名稱/團隊名稱")
	case input.Email == "":
		return apperr.Validation("請輸入聯絡信箱")
	case input.Phone == "":
		return apperr.Validation("請輸入聯絡手機")
	case input.Title == "":
		return apperr.Validation("請輸入提案標題")
	case input.CategoryKey == 0:
		return apperr.Validation("請選擇提案分類")
	case input.TargetMoney == 0:
		return apperr.Validation("請輸入提案目標")
	case input.StartDate == 0:
		return apperr.Validation("請輸入提案開始日期")
	case input.EndDate == 0:
		return apperr.Validation("請輸入提案截止日期")
	case input.Describe == "":
		return apperr.Validation("請輸入提案簡介")
	case input.CoverUrl == "":
		return apperr.Validation("請上傳封面")
	case input.Content == "":
		return apperr.Validation("請輸入內容")
	}

	if input.CategoryKey < model.CategoryMin || input.CategoryKey > model.CategoryMax {
		return apperr.Validation("提案類型錯誤")
	}
	if input.TargetMoney < 0 {
		return apperr.Validation("提案目標金額錯誤")
	}
	return nil
}

func validateDates(input *ProjectInput, now int64) error {
	if input.EndDate <= input.StartDate {
		return apperr.Validation("截止日期需晚於開始日期")
	}
	if input.StartDate < now || input.EndDate < now {
		return apperr.Validation("提案日期不能早於今日")
	}
	if input.StartDate < now+minStartLeadDays*86400 {
		return apperr.Validation("開始日期不能是 10 日內")
	}
	return nil
}

func applyInput(project *model.ProjectModel, input *ProjectInput) {
	project.Title = input.Title
	project.TeamName = input.TeamName
	project.Introduce = input.Introduce
	project.Email = input.Email
	project.Phone = input.Phone
	project.CategoryKey = input.CategoryKey
	project.TargetMoney = input.TargetMoney
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Describe = input.Describe
	project.Content = input.Content
	project.CoverUrl = input.CoverUrl
	project.VideoUrl = input.VideoUrl
	project.RelatedUrl = input.RelatedUrl
	project.FeedbackItem = input.FeedbackItem
	project.FeedbackUrl = input.FeedbackUrl
	project.FeedbackMoney = input.FeedbackMoney
	project.FeedbackDate = input.FeedbackDate
}

// Submit 提案送审：建立提案并写入首笔送审记录
func (p *ProjectLogic) Submit(userId int64, input *ProjectInput) (*model.ProjectModel, error) {
	now := time.Now().Unix()
	if err := validateRequired(input); err != nil {
		return nil, err
	}
	if err := validateDates(input, now); err != nil {
		return nil, err
	}

	project := &model.ProjectModel{UserId: userId}
	applyInput(project, input)

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return tx.Create(&model.ReviewLogModel{
			ProjectId: project.Id,
			Status:    model.ReviewStatusPending,
		}).Error
	})
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return project, nil
}

// Edit 编辑提案：覆写可变字段并重置审核（追加送审记录）
//
// earlyEnd 为 true 时将截止日期改为现在，提前结束募资
func (p *ProjectLogic) Edit(projectId, userId int64, input *ProjectInput, earlyEnd bool) error {
	now := time.Now().Unix()

	var project model.ProjectModel
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("查無此提案")
		}
		return apperr.Unexpected(err)
	}

	if project.UserId != userId {
		return apperr.Forbidden("身分驗證錯誤")
	}
	if project.EndDate < now {
		return apperr.Validation("提案已結束")
	}

	if err := validateRequired(input); err != nil {
		return err
	}
	if earlyEnd {
		input.StartDate = project.StartDate
		input.EndDate = now
	} else if input.EndDate <= input.StartDate {
		return apperr.Validation("截止日期需晚於開始日期")
	}

	applyInput(&project, input)

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&project).Error; err != nil {
			return err
		}
		// 编辑后重新送审
		return tx.Create(&model.ReviewLogModel{
			ProjectId: project.Id,
			Status:    model.ReviewStatusPending,
		}).Error
	})
	if err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

func stateCondition(query *gorm.DB, state int, now int64) (*gorm.DB, error) {
	switch state {
	case StateCodePending, StateCodeRejected:
		return query.Where("rl.status = ?", state), nil
	case StateCodeApproved:
		return query.Where("rl.status = ? AND project.end_date >= ?", model.ReviewStatusApproved, now), nil
	case StateCodeEnded:
		return query.Where("rl.status = ? AND project.end_date < ?", model.ReviewStatusApproved, now), nil
	case StateCodeAll:
		return query, nil
	default:
		return nil, apperr.Validation("提案狀態錯誤")
	}
}

type reviewedProjectRow struct {
	Id           int64
	CoverUrl     string
	Title        string
	StartDate    int64
	EndDate      int64
	TargetMoney  int64
	CreateTime   int64
	NickName     string
	ReviewStatus int
}

// AdminProjectItem 管理端列表单行
type AdminProjectItem struct {
	Id          int64  `json:"id"`
	CoverUrl    string `json:"coverUrl"`
	Title       string `json:"title"`
	StartDate   int64  `json:"startDate"`
	EndDate     int64  `json:"endDate"`
	TargetMoney int64  `json:"targetMoney"`
	CountMoney  int64  `json:"countMoney"`
	NickName    string `json:"nickName"`
	Status      int    `json:"status"`
}

// AdminListParams 管理端列表查询参数
type AdminListParams struct {
	Req      pagination.Request
	SortDesc bool
	State    int
	Search   string
}

// AdminList 管理端提案列表：最新审核状态过滤 + 关键字/编号搜索
//
// 超页回到第一页（沿用线上行为），募资聚合只算当前窗口
func (p *ProjectLogic) AdminList(params AdminListParams) ([]AdminProjectItem, pagination.Meta, error) {
	now := time.Now().Unix()

	query := p.db.Model(&model.ProjectModel{}).
		Select("project.id, project.cover_url, project.title, project.start_date, project.end_date, "+
			"project.target_money, project.create_time, u.nick_name, rl.status AS review_status").
		Joins(latestReviewJoin).
		Joins(`JOIN "user" u ON u.id = project.user_id`)

	query, err := stateCondition(query, params.State, now)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if params.Search != "" {
		query = query.Where("project.title LIKE ? OR CAST(project.id AS TEXT) = ?",
			"%"+params.Search+"%", params.Search)
	}

	order := "project.create_time ASC, project.id ASC"
	if params.SortDesc {
		order = "project.create_time DESC, project.id DESC"
	}

	rows, meta, err := pagination.Paginate[reviewedProjectRow](query, order, params.Req, pagination.ClampFirstPage)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	items, err := p.buildAdminItems(rows, now)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, meta, nil
}

func (p *ProjectLogic) buildAdminItems(rows []reviewedProjectRow, now int64) ([]AdminProjectItem, error) {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.Id
	}
	stats, err := p.sponsors.StatsForProjects(ids)
	if err != nil {
		return nil, err
	}

	items := make([]AdminProjectItem, len(rows))
	for i, row := range rows {
		items[i] = AdminProjectItem{
			Id:          row.Id,
			CoverUrl:    row.CoverUrl,
			Title:       row.Title,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
			TargetMoney: row.TargetMoney,
			CountMoney:  stats[row.Id].AchievedMoney,
			NickName:    row.NickName,
			Status:      StateCode(row.ReviewStatus, row.EndDate, now),
		}
	}
	return items, nil
}

// ReviewEntry 审核记录（对外）
type ReviewEntry struct {
	Status     int    `json:"status"`
	Content    string `json:"content"`
	CreateTime int64  `json:"createTime"`
}

// AdminProjectDetail 管理端提案详情
type AdminProjectDetail struct {
	Project       *model.ProjectModel `json:"project"`
	NickName      string              `json:"nickName"`
	AchievedMoney int64               `json:"achievedMoney"`
	SponsorCount  int64               `json:"sponsorCount"`
	State         StateResult         `json:"state"`
	ReviewLog     []ReviewEntry       `json:"reviewLog"`
}

// AdminDetail 管理端提案详情；无审核记录时补一笔送审
func (p *ProjectLogic) AdminDetail(projectId int64) (*AdminProjectDetail, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("查無此提案")
		}
		return nil, apperr.Unexpected(err)
	}

	entries, err := p.reviewEntries(projectId)
	if err != nil {
		return nil, err
	}

	// 不变式：提案至少有一笔审核记录，首次查看时补送审
	if len(entries) == 0 {
		entry := model.ReviewLogModel{ProjectId: projectId, Status: model.ReviewStatusPending}
		if err := p.db.Create(&entry).Error; err != nil {
			return nil, apperr.Unexpected(err)
		}
		entries = []model.ReviewLogModel{entry}
	}

	state, err := DeriveState(&project, entries, time.Now().Unix())
	if err != nil {
		return nil, err
	}

	stats, err := p.sponsors.StatsForProjects([]int64{projectId})
	if err != nil {
		return nil, err
	}

	var owner model.UserModel
	if err := p.db.First(&owner, project.UserId).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unexpected(err)
	}

	return &AdminProjectDetail{
		Project:       &project,
		NickName:      owner.NickName,
		AchievedMoney: stats[projectId].AchievedMoney,
		SponsorCount:  stats[projectId].SponsorCount,
		State:         state,
		ReviewLog:     toReviewEntries(entries),
	}, nil
}

func (p *ProjectLogic) reviewEntries(projectId int64) ([]model.ReviewLogModel, error) {
	var entries []model.ReviewLogModel
	if err := p.db.Where("project_id = ?", projectId).
		Order("create_time ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, apperr.Unexpected(err)
	}
	return entries, nil
}

func toReviewEntries(entries []model.ReviewLogModel) []ReviewEntry {
	result := make([]ReviewEntry, len(entries))
	for i, entry := range entries {
		result[i] = ReviewEntry{
			Status:     entry.Status,
			Content:    entry.Content,
			CreateTime: entry.CreateTime,
		}
	}
	return result
}

// PublicProjectItem 公开列表/首页卡片
type PublicProjectItem struct {
	Id             int64   `json:"id"`
	Title          string  `json:"title"`
	TeamName       string  `json:"teamName"`
	CategoryKey    int     `json:"categoryKey"`
	CoverUrl       string  `json:"coverUrl"`
	StartDate      int64   `json:"startDate"`
	EndDate        int64   `json:"endDate"`
	TargetMoney    int64   `json:"targetMoney"`
	AchievedMoney  int64   `json:"achievedMoney"`
	SponsorCount   int64   `json:"sponsorCount"`
	Percentage     float64 `json:"percentage"`
	TrackingStatus bool    `json:"trackingStatus"`
}

// PublicListParams 公开列表查询参数
type PublicListParams struct {
	Req         pagination.Request
	CategoryKey int
	Search      string
	SortDesc    bool
	ViewerId    int64
}

// PublicList 公开提案列表，仅含曾核准提案，超页回 404
func (p *ProjectLogic) PublicList(params PublicListParams) ([]PublicProjectItem, pagination.Meta, error) {
	query := p.db.Model(&model.ProjectModel{}).Where(approvedExists)

	if params.CategoryKey != 0 {
		if params.CategoryKey < model.CategoryMin || params.CategoryKey > model.CategoryMax {
			return nil, pagination.Meta{}, apperr.Validation("提案類型錯誤")
		}
		query = query.Where("category_key = ?", params.CategoryKey)
	}
	if params.Search != "" {
		query = query.Where("title LIKE ?", "%"+params.Search+"%")
	}

	// startDate 排序，同值按写入顺序（id）稳定排列
	order := "start_date ASC, id ASC"
	if params.SortDesc {
		order = "start_date DESC, id DESC"
	}

	rows, meta, err := pagination.Paginate[model.ProjectModel](query, order, params.Req, pagination.Strict)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	items, err := p.buildPublicItems(rows, params.ViewerId)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, meta, nil
}

func (p *ProjectLogic) buildPublicItems(rows []model.ProjectModel, viewerId int64) ([]PublicProjectItem, error) {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.Id
	}

	stats, err := p.sponsors.StatsForProjects(ids)
	if err != nil {
		return nil, err
	}
	tracked, err := p.trackedSet(viewerId, ids)
	if err != nil {
		return nil, err
	}

	items := make([]PublicProjectItem, len(rows))
	for i, row := range rows {
		stat := stats[row.Id]
		percentage := float64(0)
		if row.TargetMoney > 0 {
			percentage = float64(stat.AchievedMoney) / float64(row.TargetMoney) * 100
		}
		items[i] = PublicProjectItem{
			Id:             row.Id,
			Title:          row.Title,
			TeamName:       row.TeamName,
			CategoryKey:    row.CategoryKey,
			CoverUrl:       row.CoverUrl,
			StartDate:      row.StartDate,
			EndDate:        row.EndDate,
			TargetMoney:    row.TargetMoney,
			AchievedMoney:  stat.AchievedMoney,
			SponsorCount:   stat.SponsorCount,
			Percentage:     percentage,
			TrackingStatus: tracked[row.Id],
		}
	}
	return items, nil
}

func (p *ProjectLogic) trackedSet(userId int64, projectIds []int64) (map[int64]bool, error) {
	tracked := make(map[int64]bool)
	if userId == 0 || len(projectIds) == 0 {
		return tracked, nil
	}

	var tracks []model.TrackModel
	if err := p.db.Where("user_id = ? AND project_id IN ?", userId, projectIds).
		Find(&tracks).Error; err != nil {
		return nil, apperr.Unexpected(err)
	}
	for _, track := range tracks {
		tracked[track.ProjectId] = true
	}
	return tracked, nil
}

// PublicProjectDetail 公开提案详情
type PublicProjectDetail struct {
	*model.ProjectModel
	AchievedMoney  int64 `json:"achievedMoney"`
	SponsorCount   int64 `json:"sponsorCount"`
	TrackingStatus bool  `json:"trackingStatus"`
}

// PublicDetail 公开提案详情，未曾核准的提案不可见
func (p *ProjectLogic) PublicDetail(projectId, viewerId int64) (*PublicProjectDetail, error) {
	var project model.ProjectModel
	err := p.db.Where("id = ?", projectId).Where(approvedExists).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("查無此提案")
		}
		return nil, apperr.Unexpected(err)
	}

	stats, err := p.sponsors.StatsForProjects([]int64{projectId})
	if err != nil {
		return nil, err
	}
	tracked, err := p.trackedSet(viewerId, []int64{projectId})
	if err != nil {
		return nil, err
	}

	return &PublicProjectDetail{
		ProjectModel:   &project,
		AchievedMoney:  stats[projectId].AchievedMoney,
		SponsorCount:   stats[projectId].SponsorCount,
		TrackingStatus: tracked[projectId],
	}, nil
}

// MemberProjectItem 会员中心提案列表单行
type MemberProjectItem struct {
	Id            int64  `json:"id"`
	Title         string `json:"title"`
	CoverUrl      string `json:"coverUrl"`
	StartDate     int64  `json:"startDate"`
	EndDate       int64  `json:"endDate"`
	TargetMoney   int64  `json:"targetMoney"`
	AchievedMoney int64  `json:"achievedMoney"`
	SponsorCount  int64  `json:"sponsorCount"`
	Status        int    `json:"status"`
}

// MemberList 会员自己的提案列表，状态码过滤同管理端，超页回第一页
func (p *ProjectLogic) MemberList(userId int64, state int, req pagination.Request) ([]MemberProjectItem, pagination.Meta, error) {
	now := time.Now().Unix()

	query := p.db.Model(&model.ProjectModel{}).
		Select("project.id, project.cover_url, project.title, project.start_date, project.end_date, "+
			"project.target_money, project.create_time, rl.status AS review_status").
		Joins(latestReviewJoin).
		Where("project.user_id = ?", userId)

	query, err := stateCondition(query, state, now)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	rows, meta, err := pagination.Paginate[reviewedProjectRow](query,
		"project.create_time DESC, project.id DESC", req, pagination.ClampFirstPage)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.Id
	}
	stats, err := p.sponsors.StatsForProjects(ids)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	items := make([]MemberProjectItem, len(rows))
	for i, row := range rows {
		items[i] = MemberProjectItem{
			Id:            row.Id,
			Title:         row.Title,
			CoverUrl:      row.CoverUrl,
			StartDate:     row.StartDate,
			EndDate:       row.EndDate,
			TargetMoney:   row.TargetMoney,
			AchievedMoney: stats[row.Id].AchievedMoney,
			SponsorCount:  stats[row.Id].SponsorCount,
			Status:        StateCode(row.ReviewStatus, row.EndDate, now),
		}
	}
	return items, meta, nil
}

// MemberProjectDetail 会员中心单一提案
type MemberProjectDetail struct {
	*model.ProjectModel
	AchievedMoney  int64         `json:"achievedMoney"`
	SupportCount   int64         `json:"supportCount"`
	TrackingStatus bool          `json:"trackingStatus"`
	State          []ReviewEntry `json:"state"`
}

// MemberDetail 会员查看自己的提案，非本人回 403
func (p *ProjectLogic) MemberDetail(projectId, userId int64) (*MemberProjectDetail, error) {
	var project model.ProjectModel
	if err := p.db.First(&project, projectId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("查無此提案")
		}
		return nil, apperr.Unexpected(err)
	}

	if project.UserId != userId {
		return nil, apperr.Forbidden("身分驗證錯誤")
	}

	entries, err := p.reviewEntries(projectId)
	if err != nil {
		return nil, err
	}

	stats, err := p.sponsors.StatsForProjects([]int64{projectId})
	if err != nil {
		return nil, err
	}
	tracked, err := p.trackedSet(userId, []int64{projectId})
	if err != nil {
		return nil, err
	}

	return &MemberProjectDetail{
		ProjectModel:   &project,
		AchievedMoney:  stats[projectId].AchievedMoney,
		SupportCount:   stats[projectId].SponsorCount,
		TrackingStatus: tracked[projectId],
		State:          toReviewEntries(entries),
	}, nil
}

// sortItemsByPercentage 热门排序（达成率高在前）
func sortItemsByPercentage(items []PublicProjectItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Percentage > items[j].Percentage
	})
}

// sortItemsByStartDate 最新排序（开始日期晚在前）
func sortItemsByStartDate(items []PublicProjectItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartDate > items[j].StartDate
	})
}
