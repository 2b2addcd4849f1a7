package model

// 提案分类（6类）
const (
	CategoryMin = 1
	CategoryMax = 6
)

// ProjectModel 募资提案
type ProjectModel struct {
	Id         int64 `json:"id" gorm:"primaryKey"`
	CreateTime int64 `json:"createTime" gorm:"autoCreateTime"`
	UpdateTime int64 `json:"updateTime" gorm:"autoUpdateTime"`

	UserId int64 `json:"userId" gorm:"not null;index"`

	// 基本信息
	Title       string `json:"title" gorm:"not null"`
	TeamName    string `json:"teamName" gorm:"not null"`
	Introduce   string `json:"introduce" gorm:"type:text"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CategoryKey int    `json:"categoryKey" gorm:"not null"`

	// 募资信息
	TargetMoney int64 `json:"targetMoney" gorm:"not null"`
	StartDate   int64 `json:"startDate" gorm:"not null"` // unix 秒
	EndDate     int64 `json:"endDate" gorm:"not null"`   // unix 秒

	// 内容
	Describe   string `json:"describe" gorm:"type:text"`
	Content    string `json:"content" gorm:"type:text"`
	CoverUrl   string `json:"coverUrl" gorm:"not null"`
	VideoUrl   string `json:"videoUrl"`
	RelatedUrl string `json:"relatedUrl"`

	// 回馈品
	FeedbackItem  string `json:"feedbackItem"`
	FeedbackUrl   string `json:"feedbackUrl"`
	FeedbackMoney int64  `json:"feedbackMoney"`
	FeedbackDate  int64  `json:"feedbackDate"`
}

// TableName 自定义表名
func (ProjectModel) TableName() string {
	return "project"
}
