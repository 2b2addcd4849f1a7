package logic

import (
	"errors"
	"regexp"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/auth"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserLogic 用户注册/登入
type UserLogic struct {
	db  *gorm.DB
	jwt *auth.Manager
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB, jwtManager *auth.Manager) *UserLogic {
	return &UserLogic{db: db, jwt: jwtManager}
}

func validateCredentials(email, password string) error {
	if email == "" {
		return apperr.Validation("請輸入Email")
	}
	if !emailRegex.MatchString(email) {
		return apperr.Validation("請輸入有效的Email")
	}
	if password == "" {
		return apperr.Validation("請輸入Password")
	}
	return nil
}

// SignUp 注册
func (u *UserLogic) SignUp(email, password, nickName string) (*model.UserModel, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	var existing model.UserModel
	err := u.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation("這個 Email 已經被註冊過了")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unexpected(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	user := &model.UserModel{
		Email:    email,
		Password: string(hashed),
		NickName: nickName,
	}
	if err := u.db.Create(user).Error; err != nil {
		return nil, apperr.Unexpected(err)
	}
	return user, nil
}

// Login 登入，成功返回 token
func (u *UserLogic) Login(email, password string) (string, *model.UserModel, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", nil, err
	}

	var user model.UserModel
	err := u.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Validation("這個 Email 尚未註冊")
		}
		return "", nil, apperr.Unexpected(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Validation("密碼錯誤")
	}

	token, err := u.jwt.Sign(user.Id, user.Auth)
	if err != nil {
		return "", nil, apperr.Unexpected(err)
	}
	return token, &user, nil
}
