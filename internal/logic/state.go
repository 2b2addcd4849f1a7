package logic

import (
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
)

// ProjectState 提案生命周期状态，读取时推导，不落库
type ProjectState string

const (
	StatePending  ProjectState = "PENDING"
	StateApproved ProjectState = "APPROVED"
	StateRejected ProjectState = "REJECTED"
	StateEnded    ProjectState = "ENDED"
)

// 列表接口使用的数字状态码（0 送审 1 核准 -1 否准 2 已结束 3 全部）
const (
	StateCodePending  = 0
	StateCodeApproved = 1
	StateCodeRejected = -1
	StateCodeEnded    = 2
	StateCodeAll      = 3
)

// StateResult 推导结果
type StateResult struct {
	State   ProjectState `json:"state"`
	Content string       `json:"content"`
}

// DeriveState 由审核记录与截止时间推导提案状态
//
// 空记录视为隐式送审；最新一笔按 createTime 取，同秒按写入顺序取后者。
// 只有最新状态为核准且已过截止日才转 ENDED：未核准就到期的提案
// 维持 PENDING/REJECTED（沿用产品行为）
func DeriveState(project *model.ProjectModel, reviewLog []model.ReviewLogModel, now int64) (StateResult, error) {
	if project == nil || project.EndDate == 0 {
		return StateResult{}, apperr.Validation("提案資料不完整，缺少截止日期")
	}

	latest := model.ReviewLogModel{Status: model.ReviewStatusPending}
	found := false
	for _, entry := range reviewLog {
		if !found || entry.CreateTime >= latest.CreateTime {
			latest = entry
			found = true
		}
	}

	if latest.Status == model.ReviewStatusApproved && project.EndDate < now {
		return StateResult{State: StateEnded, Content: latest.Content}, nil
	}

	switch latest.Status {
	case model.ReviewStatusApproved:
		return StateResult{State: StateApproved, Content: latest.Content}, nil
	case model.ReviewStatusRejected:
		return StateResult{State: StateRejected, Content: latest.Content}, nil
	default:
		return StateResult{State: StatePending, Content: latest.Content}, nil
	}
}

// StateCode 最新审核状态映射为列表接口的数字状态码
func StateCode(latestStatus int, endDate, now int64) int {
	if latestStatus == model.ReviewStatusApproved && endDate < now {
		return StateCodeEnded
	}
	return latestStatus
}
