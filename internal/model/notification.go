package model

// NotificationModel 站内通知，只允许翻转 isRead
type NotificationModel struct {
	Id         int64 `json:"id" gorm:"primaryKey"`
	CreateTime int64 `json:"createTime" gorm:"autoCreateTime"`
	UpdateTime int64 `json:"updateTime" gorm:"autoUpdateTime"`

	UserId    int64  `json:"userId" gorm:"not null;index"`
	ProjectId int64  `json:"projectId" gorm:"not null"`
	Content   string `json:"content" gorm:"not null"`
	IsRead    bool   `json:"isRead" gorm:"default:false"`
}

// TableName 自定义表名
func (NotificationModel) TableName() string {
	return "notification"
}
