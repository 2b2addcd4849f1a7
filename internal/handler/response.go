package handler

import (
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logger"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Status     string           `json:"status"`
	Message    string           `json:"message"`
	Results    interface{}      `json:"results,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, message string, results interface{}) {
	c.JSON(200, Response{
		Status:  "success",
		Message: message,
		Results: results,
	})
}

// SuccessPage 带分页的成功响应
func SuccessPage(c *gin.Context, message string, results interface{}, meta pagination.Meta) {
	c.JSON(200, Response{
		Status:     "success",
		Message:    message,
		Results:    results,
		Pagination: &meta,
	})
}

// Fail 错误响应：可预期错误回传原始讯息，
// 非预期错误在 release 模式下隐藏详情、完整记录日志
func Fail(c *gin.Context, err error) {
	appErr := apperr.From(err)

	if !appErr.Operational() {
		logger.Error("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
		if gin.Mode() == gin.ReleaseMode {
			c.JSON(appErr.HTTPStatus, Response{Status: "error", Message: "伺服器錯誤"})
			return
		}
		c.JSON(appErr.HTTPStatus, Response{Status: "error", Message: appErr.Error()})
		return
	}

	c.JSON(appErr.HTTPStatus, Response{
		Status:  "error",
		Message: appErr.Message,
	})
}
