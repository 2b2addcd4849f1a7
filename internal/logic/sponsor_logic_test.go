package logic

import (
	"testing"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSponsorValidate(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner.Id, "老屋修繕計畫", daysFromNow(11), daysFromNow(40))

	logic := NewSponsorLogic(db)

	cases := []struct {
		name    string
		mutate  func(*model.SponsorModel)
		message string
	}{
		{"missing project", func(r *model.SponsorModel) { r.ProjectId = 0 }, "請輸入提案id"},
		{"missing money", func(r *model.SponsorModel) { r.Money = 0 }, "請輸入贊助金額"},
		{"missing name", func(r *model.SponsorModel) { r.UserName = "" }, "請輸入贊助者名稱"},
		{"missing phone", func(r *model.SponsorModel) { r.Phone = "" }, "請輸入贊助者聯絡電話"},
		{"feedback missing receiver", func(r *model.SponsorModel) {
			r.IsNeedFeedback = true
			r.Receiver = ""
		}, "請輸入收件人名稱"},
		{"feedback missing address", func(r *model.SponsorModel) {
			r.IsNeedFeedback = true
			r.Receiver = "收件人"
			r.ReceiverPhone = "0911222333"
			r.Address = ""
		}, "請輸入收件地址"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := model.SponsorModel{
				UserId:    owner.Id,
				ProjectId: project.Id,
				Money:     1000,
				UserName:  "贊助者",
				Phone:     "0987654321",
			}
			tc.mutate(&record)
			assert.EqualError(t, logic.Validate(&record), tc.message)
		})
	}
}

func TestSponsorValidateProjectNotFound(t *testing.T) {
	db := newTestDB(t)
	logic := NewSponsorLogic(db)

	err := logic.Validate(&model.SponsorModel{
		UserId:    1,
		ProjectId: 9999,
		Money:     1000,
		UserName:  "贊助者",
		Phone:     "0987654321",
	})
	require.Error(t, err)
	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	assert.Equal(t, "查無該提案", appErr.Message)
}

func TestStatsForProjectsOnlyWindowIds(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	a := createProject(t, db, owner.Id, "提案A", daysFromNow(11), daysFromNow(40))
	b := createProject(t, db, owner.Id, "提案B", daysFromNow(11), daysFromNow(40))
	createSponsor(t, db, owner.Id, a.Id, 1000)
	createSponsor(t, db, owner.Id, a.Id, 1200)
	createSponsor(t, db, owner.Id, b.Id, 500)

	logic := NewSponsorLogic(db)

	stats, err := logic.StatsForProjects([]int64{a.Id})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.EqualValues(t, 2200, stats[a.Id].AchievedMoney)
	assert.EqualValues(t, 2, stats[a.Id].SponsorCount)

	stats, err = logic.StatsForProjects(nil)
	require.NoError(t, err)
	assert.Empty(t, stats)
}
