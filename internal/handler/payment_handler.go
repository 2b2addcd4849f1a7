package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/logic"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/middleware"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/notify"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	db                *gorm.DB
	crypto            *payment.TradeCrypto
	store             *payment.OrderStore
	sponsorLogic      *logic.SponsorLogic
	notificationLogic *logic.NotificationLogic
}

func NewPaymentHandler(db *gorm.DB, crypto *payment.TradeCrypto, store *payment.OrderStore, hub *notify.Hub) *PaymentHandler {
	return &PaymentHandler{
		db:                db,
		crypto:            crypto,
		store:             store,
		sponsorLogic:      logic.NewSponsorLogic(db),
		notificationLogic: logic.NewNotificationLogic(db, hub),
	}
}

type supportRequest struct {
	ProjectId      int64  `json:"projectId"`
	Money          int64  `json:"money"`
	UserName       string `json:"userName"`
	Phone          string `json:"phone"`
	IsNeedFeedback bool   `json:"isNeedFeedback"`
	Receiver       string `json:"receiver"`
	ReceiverPhone  string `json:"receiverPhone"`
	Address        string `json:"address"`
}

// Support 建立赞助订单，回传金流供应商所需的加密资料
func (h *PaymentHandler) Support(c *gin.Context) {
	var req supportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}

	userId := middleware.UserId(c)
	record := model.SponsorModel{
		UserId:         userId,
		ProjectId:      req.ProjectId,
		Money:          req.Money,
		UserName:       req.UserName,
		Phone:          req.Phone,
		IsNeedFeedback: req.IsNeedFeedback,
		Receiver:       req.Receiver,
		ReceiverPhone:  req.ReceiverPhone,
		Address:        req.Address,
	}
	if err := h.sponsorLogic.Validate(&record); err != nil {
		Fail(c, err)
		return
	}

	now := time.Now()
	order := payment.Order{
		UserId:          userId,
		ProjectId:       req.ProjectId,
		Money:           req.Money,
		UserName:        req.UserName,
		Phone:           req.Phone,
		Receiver:        req.Receiver,
		ReceiverPhone:   req.ReceiverPhone,
		Address:         req.Address,
		IsNeedFeedback:  req.IsNeedFeedback,
		MerchantOrderNo: strconv.FormatInt(now.UnixMilli(), 10),
		TimeStamp:       now.Unix(),
	}

	tradeInfo, tradeSha, err := h.crypto.Encrypt(&order)
	if err != nil {
		Fail(c, apperr.Unexpected(err))
		return
	}

	if err := h.store.Save(c.Request.Context(), &order); err != nil {
		Fail(c, err)
		return
	}

	Success(c, "取得加密資料", gin.H{
		"MerchantID":      h.crypto.MerchantID(),
		"MerchantOrderNo": order.MerchantOrderNo,
		"TradeInfo":       tradeInfo,
		"TradeSha":        tradeSha,
		"Version":         h.crypto.Version(),
	})
}

type notifyRequest struct {
	TradeInfo string `form:"TradeInfo"`
	TradeSha  string `form:"TradeSha"`
}

// Notify 金流付款结果回调，兑现暂存订单并写入赞助记录
func (h *PaymentHandler) Notify(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBind(&req); err != nil || req.TradeInfo == "" {
		Fail(c, apperr.Validation("參數錯誤"))
		return
	}

	if h.crypto.Sha(req.TradeInfo) != req.TradeSha {
		Fail(c, apperr.Validation("交易資料驗證失敗"))
		return
	}

	payload, err := h.crypto.DecryptNotify(req.TradeInfo)
	if err != nil {
		Fail(c, apperr.Validation("交易資料驗證失敗"))
		return
	}

	order, err := h.store.Take(c.Request.Context(), payload.Result.MerchantOrderNo)
	if err != nil {
		Fail(c, err)
		return
	}

	if payload.Status != "SUCCESS" {
		Fail(c, apperr.Validation(payload.Message))
		return
	}

	record := model.SponsorModel{
		UserId:         order.UserId,
		ProjectId:      order.ProjectId,
		Money:          order.Money,
		UserName:       order.UserName,
		Phone:          order.Phone,
		IsNeedFeedback: order.IsNeedFeedback,
		Receiver:       order.Receiver,
		ReceiverPhone:  order.ReceiverPhone,
		Address:        order.Address,
	}
	if err := h.sponsorLogic.Create(&record); err != nil {
		Fail(c, err)
		return
	}

	// 通知赞助者，推送失败不影响回调结果
	var project model.ProjectModel
	if err := h.db.First(&project, order.ProjectId).Error; err == nil {
		content := fmt.Sprintf("您已成功贊助「%s」，感謝您的支持", project.Title)
		if err := h.notificationLogic.Create(nil, order.UserId, order.ProjectId, content); err == nil {
			h.notificationLogic.Push(order.UserId)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		Fail(c, apperr.Unexpected(err))
		return
	}

	Success(c, "贊助成功", gin.H{
		"merchantOrderNo": payload.Result.MerchantOrderNo,
		"tradeNo":         payload.Result.TradeNo,
		"payTime":         payload.Result.PayTime,
	})
}
