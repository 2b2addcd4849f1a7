package handler

import (
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/auth"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	userLogic *logic.UserLogic
}

func NewUserHandler(db *gorm.DB, jwtManager *auth.Manager) *UserHandler {
	return &UserHandler{
		userLogic: logic.NewUserLogic(db, jwtManager),
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	NickName string `json:"nickName"`
}

// SignUp 注册
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}

	user, err := h.userLogic.SignUp(req.Email, req.Password, req.NickName)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, "註冊成功", gin.H{
		"id":       user.Id,
		"email":    user.Email,
		"nickName": user.NickName,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 登入
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}

	token, _, err := h.userLogic.Login(req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, "登入成功", gin.H{
		"token": token,
	})
}
