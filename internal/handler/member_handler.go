package handler

import (
	"strconv"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logic"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/middleware"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MemberHandler struct {
	projectLogic *logic.ProjectLogic
	trackLogic   *logic.TrackLogic
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{
		projectLogic: logic.NewProjectLogic(db),
		trackLogic:   logic.NewTrackLogic(db),
	}
}

// Projects 我的提案列表
func (h *MemberHandler) Projects(c *gin.Context) {
	req, err := pagination.Parse(c.Query("pageNo"), c.Query("pageSize"))
	if err != nil {
		Fail(c, err)
		return
	}

	state := logic.StateCodeAll
	if stateStr := c.Query("state"); stateStr != "" {
		state, err = strconv.Atoi(stateStr)
		if err != nil {
			Fail(c, apperr.Validation("提案狀態錯誤"))
			return
		}
	}

	items, meta, err := h.projectLogic.MemberList(middleware.UserId(c), state, req)
	if err != nil {
		Fail(c, err)
		return
	}

	SuccessPage(c, "取得提案列表成功", items, meta)
}

// Project 我的单一提案内容
func (h *MemberHandler) Project(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		Fail(c, err)
		return
	}

	detail, err := h.projectLogic.MemberDetail(id, middleware.UserId(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, "取得提案內容成功", detail)
}

type editProjectRequest struct {
	logic.ProjectInput
	EarlyEnd bool `json:"earlyEnd"`
}

// UpdateProject 编辑提案，重新送审
func (h *MemberHandler) UpdateProject(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		Fail(c, err)
		return
	}

	var req editProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}

	if err := h.projectLogic.Edit(id, middleware.UserId(c), &req.ProjectInput, req.EarlyEnd); err != nil {
		Fail(c, err)
		return
	}

	Success(c, "提案更新成功，已重新送審", nil)
}

type collectionRequest struct {
	ProjectId int64 `json:"projectId"`
}

// ToggleCollection 追踪/取消追踪提案
func (h *MemberHandler) ToggleCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}
	if req.ProjectId == 0 {
		Fail(c, apperr.Validation("請輸入提案id"))
		return
	}

	tracking, err := h.trackLogic.Toggle(middleware.UserId(c), req.ProjectId)
	if err != nil {
		Fail(c, err)
		return
	}

	message := "取消追蹤成功"
	if tracking {
		message = "追蹤成功"
	}
	Success(c, message, gin.H{"trackingStatus": tracking})
}

// Collections 我追踪的提案
func (h *MemberHandler) Collections(c *gin.Context) {
	req, err := pagination.Parse(c.Query("pageNo"), c.Query("pageSize"))
	if err != nil {
		Fail(c, err)
		return
	}

	items, meta, err := h.trackLogic.List(middleware.UserId(c), req)
	if err != nil {
		Fail(c, err)
		return
	}

	SuccessPage(c, "取得追蹤列表成功", items, meta)
}
