package model

// 用户权限
const (
	AuthMember = 0 // 一般会员
	AuthAdmin  = 1 // 管理员
)

// UserModel 用户
type UserModel struct {
	Id         int64 `json:"id" gorm:"primaryKey"`
	CreateTime int64 `json:"createTime" gorm:"autoCreateTime"`
	UpdateTime int64 `json:"updateTime" gorm:"autoUpdateTime"`

	Email    string `json:"email" gorm:"not null;uniqueIndex"`
	Password string `json:"-" gorm:"not null"`
	Auth     int    `json:"auth" gorm:"default:0"`

	NickName string `json:"nickName"`
	UserName string `json:"userName"`
	Gender   int    `json:"gender" gorm:"default:0"`
	Birth    int64  `json:"birth"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	TeamName string `json:"teamName"`
	AboutMe  string `json:"aboutMe"`
	Avatar   string `json:"avatar"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "user"
}
