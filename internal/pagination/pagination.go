package pagination

import (
	"strconv"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"gorm.io/gorm"
)

// Policy 超页处理策略。各端点行为不同：
// 管理端/会员端列表静默回到第一页，公开列表与通知回 404
type Policy int

const (
	Strict Policy = iota
	ClampFirstPage
)

// Request 分页请求参数
type Request struct {
	PageNo   int
	PageSize int
}

// Meta 分页元信息
type Meta struct {
	Count     int64 `json:"count"`
	PageNo    int   `json:"pageNo"`
	PageSize  int   `json:"pageSize"`
	HasPre    bool  `json:"hasPre"`
	HasNext   bool  `json:"hasNext"`
	TotalPage int   `json:"totalPage"`
}

// Parse 解析 query 参数，空值取默认，非正整数报错
func Parse(pageNoStr, pageSizeStr string) (Request, error) {
	req := Request{PageNo: 1, PageSize: 10}

	if pageNoStr != "" {
		n, err := strconv.Atoi(pageNoStr)
		if err != nil || n <= 0 {
			return req, apperr.Validation("當前頁數錯誤")
		}
		req.PageNo = n
	}

	if pageSizeStr != "" {
		n, err := strconv.Atoi(pageSizeStr)
		if err != nil || n <= 0 {
			return req, apperr.Validation("單頁筆數錯誤")
		}
		req.PageSize = n
	}

	return req, nil
}

// Window 根据总数计算偏移量与分页元信息
//
// count 为 0 时返回空页不报错；超页时按策略回 404 或回到第一页
func Window(req Request, count int64, policy Policy) (int, Meta, error) {
	if req.PageNo <= 0 || req.PageSize <= 0 {
		return 0, Meta{}, apperr.Validation("當前頁數錯誤")
	}

	totalPage := int((count + int64(req.PageSize) - 1) / int64(req.PageSize))

	pageNo := req.PageNo
	if count == 0 {
		return 0, Meta{
			Count:     0,
			PageNo:    pageNo,
			PageSize:  req.PageSize,
			HasPre:    pageNo > 1,
			HasNext:   false,
			TotalPage: 0,
		}, nil
	}

	if pageNo > totalPage {
		if policy == Strict {
			return 0, Meta{}, apperr.PageOutOfRange("無此分頁")
		}
		pageNo = 1
	}

	meta := Meta{
		Count:     count,
		PageNo:    pageNo,
		PageSize:  req.PageSize,
		HasPre:    pageNo > 1,
		HasNext:   pageNo < totalPage,
		TotalPage: totalPage,
	}
	return req.PageSize * (pageNo - 1), meta, nil
}

// Paginate 对已组装好筛选条件的查询执行 count + 窗口查询
//
// 计数在筛选（含过滤型join）之后、窗口之前执行；排序需带稳定的次级键
func Paginate[T any](query *gorm.DB, order string, req Request, policy Policy) ([]T, Meta, error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, Meta{}, apperr.Unexpected(err)
	}

	offset, meta, err := Window(req, count, policy)
	if err != nil {
		return nil, Meta{}, err
	}

	results := []T{}
	if count == 0 {
		return results, meta, nil
	}

	if err := query.Session(&gorm.Session{}).
		Order(order).
		Offset(offset).
		Limit(req.PageSize).
		Find(&results).Error; err != nil {
		return nil, Meta{}, apperr.Unexpected(err)
	}

	return results, meta, nil
}
