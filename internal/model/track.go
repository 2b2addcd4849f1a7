package model

// TrackModel 提案追踪，(userId, projectId) 唯一
type TrackModel struct {
	Id         int64 `json:"id" gorm:"primaryKey"`
	CreateTime int64 `json:"createTime" gorm:"autoCreateTime"`
	UpdateTime int64 `json:"updateTime" gorm:"autoUpdateTime"`

	UserId    int64 `json:"userId" gorm:"not null;uniqueIndex:idx_track_user_project"`
	ProjectId int64 `json:"projectId" gorm:"not null;uniqueIndex:idx_track_user_project"`
}

// TableName 自定义表名
func (TrackModel) TableName() string {
	return "track"
}
