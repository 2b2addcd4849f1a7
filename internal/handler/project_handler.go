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

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	homeLogic    *logic.HomeLogic
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: logic.NewProjectLogic(db),
		homeLogic:    logic.NewHomeLogic(db),
	}
}

func parseId(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("無效的提案ID")
	}
	return id, nil
}

// Info 首页数据
func (h *ProjectHandler) Info(c *gin.Context) {
	info, err := h.homeLogic.Info(middleware.UserId(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, "取得首頁資料成功", info)
}

// Create 提案送审
func (h *ProjectHandler) Create(c *gin.Context) {
	var input logic.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}

	project, err := h.projectLogic.Submit(middleware.UserId(c), &input)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, "提案送審成功", gin.H{"id": project.Id})
}

// List 公开提案列表
func (h *ProjectHandler) List(c *gin.Context) {
	req, err := pagination.Parse(c.Query("pageNo"), c.Query("pageSize"))
	if err != nil {
		Fail(c, err)
		return
	}

	categoryKey := 0
	if keyStr := c.Query("categoryKey"); keyStr != "" {
		categoryKey, err = strconv.Atoi(keyStr)
		if err != nil {
			Fail(c, apperr.Validation("提案類型錯誤"))
			return
		}
	}

	items, meta, err := h.projectLogic.PublicList(logic.PublicListParams{
		Req:         req,
		CategoryKey: categoryKey,
		Search:      c.Query("search"),
		SortDesc:    c.Query("sortDesc") == "true",
		ViewerId:    middleware.UserId(c),
	})
	if err != nil {
		Fail(c, err)
		return
	}

	SuccessPage(c, "取得提案列表成功", items, meta)
}

// Detail 公开提案详情
func (h *ProjectHandler) Detail(c *gin.Context) {
	id, err := parseId(c)
	if err != nil {
		Fail(c, err)
		return
	}

	detail, err := h.projectLogic.PublicDetail(id, middleware.UserId(c))
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, "取得提案內容成功", detail)
}
