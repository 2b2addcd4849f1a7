package model

// 审核状态
const (
	ReviewStatusPending  = 0  // 送审
	ReviewStatusApproved = 1  // 核准
	ReviewStatusRejected = -1 // 否准
)

// ReviewLogModel 提案审核记录，追加写入，不修改不删除
type ReviewLogModel struct {
	Id         int64 `json:"id" gorm:"primaryKey"`
	CreateTime int64 `json:"createTime" gorm:"autoCreateTime"`
	UpdateTime int64 `json:"updateTime" gorm:"autoUpdateTime"`

	ProjectId int64  `json:"projectId" gorm:"not null;index"`
	Status    int    `json:"status" gorm:"not null"`
	Content   string `json:"content" gorm:"type:text"`
}

// TableName 自定义表名
func (ReviewLogModel) TableName() string {
	return "review_log"
}
