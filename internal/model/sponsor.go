package model

// SponsorModel 赞助记录，追加写入
type SponsorModel struct {
	Id         int64 `json:"id" gorm:"primaryKey"`
	CreateTime int64 `json:"createTime" gorm:"autoCreateTime"`
	UpdateTime int64 `json:"updateTime" gorm:"autoUpdateTime"`

	UserId    int64 `json:"userId" gorm:"not null;index"`
	ProjectId int64 `json:"projectId" gorm:"not null;index"`
	Money     int64 `json:"money" gorm:"not null"`

	UserName string `json:"userName" gorm:"not null"`
	Phone    string `json:"phone" gorm:"not null"`

	// 收件信息，isNeedFeedback 为 true 时必填
	IsNeedFeedback bool   `json:"isNeedFeedback" gorm:"not null"`
	Receiver       string `json:"receiver"`
	ReceiverPhone  string `json:"receiverPhone"`
	Address        string `json:"address"`
}

// TableName 自定义表名
func (SponsorModel) TableName() string {
	return "sponsor"
}
