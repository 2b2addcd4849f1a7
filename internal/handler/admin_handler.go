package handler

import (
	"strconv"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logic"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/middleware"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct {
	projectLogic *logic.ProjectLogic
	reviewLogic  *logic.ReviewLogic
}

func NewAdminHandler(db *gorm.DB, hub *notify.Hub) *AdminHandler {
	return &AdminHandler{
		projectLogic: logic.NewProjectLogic(db),
		reviewLogic:  logic.NewReviewLogic(db, hub),
	}
}

// Projects 管理端提案列表
func (h *AdminHandler) Projects(c *gin.Context) {
	req, err := pagination.Parse(c.Query("pageNo"), c.Query("pageSize"))
	if err != nil {
		Fail(c, err)
		return
	}

	sortDescStr := c.DefaultQuery("sortDesc", "false")
	if sortDescStr != "true" && sortDescStr != "false" {
		Fail(c, apperr.Validation("提案新舊排序錯誤"))
		return
	}

	state := logic.StateCodePending
	if stateStr := c.Query("state"); stateStr != "" {
		state, err = strconv.Atoi(stateStr)
		if err != nil {
			Fail(c, apperr.Validation("提案狀態錯誤"))
			return
		}
	}

	items, meta, err := h.projectLogic.AdminList(logic.AdminListParams{
		Req:      req,
		SortDesc: sortDescStr == "true",
		State:    state,
		Search:   c.Query("search"),
	})
	if err != nil {
		Fail(c, err)
		return
	}

	SuccessPage(c, "提案列表取得成功", items, meta)
}

// Project 管理端提案详情
func (h *AdminHandler) Project(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		Fail(c, err)
		return
	}

	detail, err := h.projectLogic.AdminDetail(id)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, "取得提案內容成功", detail)
}

type decideRequest struct {
	Approve int    `json:"approve"`
	Content string `json:"content"`
}

// Decide 审核提案（核准/否准）
func (h *AdminHandler) Decide(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		Fail(c, err)
		return
	}

	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}

	if err := h.reviewLogic.Decide(id, req.Approve, req.Content, middleware.UserId(c)); err != nil {
		Fail(c, err)
		return
	}

	Success(c, "提案審核完成", nil)
}
