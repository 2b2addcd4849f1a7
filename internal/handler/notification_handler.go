package handler

import (
	"io"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logic"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/middleware"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notificationLogic *logic.NotificationLogic
	hub               *notify.Hub
}

func NewNotificationHandler(db *gorm.DB, hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{
		notificationLogic: logic.NewNotificationLogic(db, hub),
		hub:               hub,
	}
}

// List 通知列表，回传的页会被标记为已读
func (h *NotificationHandler) List(c *gin.Context) {
	req, err := pagination.Parse(c.Query("pageNo"), c.Query("pageSize"))
	if err != nil {
		Fail(c, err)
		return
	}

	items, meta, unread, err := h.notificationLogic.List(middleware.UserId(c), req)
	if err != nil {
		Fail(c, err)
		return
	}

	SuccessPage(c, "取得通知列表成功", gin.H{
		"notifications": items,
		"unReadCount":   unread,
	}, meta)
}

// Stream 未读数 SSE 推送，连线时先回当前未读数
func (h *NotificationHandler) Stream(c *gin.Context) {
	userId := middleware.UserId(c)

	ch, cancel := h.hub.Subscribe(userId)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	count, err := h.notificationLogic.UnreadCount(userId)
	if err != nil {
		Fail(c, err)
		return
	}
	c.SSEvent("unRead", gin.H{"count": count})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case count, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("unRead", gin.H{"count": count})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
