package logic

import (
	"testing"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeInfo(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	sponsor := createUser(t, db, "sponsor@example.com")

	// 募资中，达成率 50%
	half := createProject(t, db, owner.Id, "老屋修繕計畫", daysFromNow(-5), daysFromNow(40))
	createReview(t, db, half.Id, model.ReviewStatusApproved, "")
	createSponsor(t, db, sponsor.Id, half.Id, 15000)

	// 募资中，达成率 100%，同时是达标案例
	full := createProject(t, db, owner.Id, "兒童閱讀計畫", daysFromNow(-3), daysFromNow(40))
	createReview(t, db, full.Id, model.ReviewStatusApproved, "")
	createSponsor(t, db, sponsor.Id, full.Id, 30000)

	// 未核准，不应出现在任何区块
	hidden := createProject(t, db, owner.Id, "未核准提案", daysFromNow(-3), daysFromNow(40))
	createReview(t, db, hidden.Id, model.ReviewStatusPending, "")

	logic := NewHomeLogic(db)
	info, err := logic.Info(0)
	require.NoError(t, err)

	// 热门按达成率排序
	require.Len(t, info.HotProjects, 2)
	assert.Equal(t, full.Id, info.HotProjects[0].Id)
	assert.Equal(t, half.Id, info.HotProjects[1].Id)

	// 最新按开始日期排序（晚开始在前）
	require.Len(t, info.RecommendProjects, 2)
	assert.Equal(t, full.Id, info.RecommendProjects[0].Id)

	// 达标案例只含达成率 >= 100% 的提案
	require.Len(t, info.SuccessProjects, 1)
	assert.Equal(t, full.Id, info.SuccessProjects[0].Id)

	assert.EqualValues(t, 3, info.Achievements.ProjectTotal)
	assert.EqualValues(t, 45000, info.Achievements.AmountTotal)
	assert.EqualValues(t, 1, info.Achievements.PeopleTotal)
}

func TestHomeInfoTracksForViewer(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	viewer := createUser(t, db, "viewer@example.com")
	project := createProject(t, db, owner.Id, "老屋修繕計畫", daysFromNow(-5), daysFromNow(40))
	createReview(t, db, project.Id, model.ReviewStatusApproved, "")
	require.NoError(t, db.Create(&model.TrackModel{UserId: viewer.Id, ProjectId: project.Id}).Error)

	logic := NewHomeLogic(db)

	info, err := logic.Info(viewer.Id)
	require.NoError(t, err)
	require.Len(t, info.HotProjects, 1)
	assert.True(t, info.HotProjects[0].TrackingStatus)

	// 未登入不带追踪状态
	info, err = logic.Info(0)
	require.NoError(t, err)
	assert.False(t, info.HotProjects[0].TrackingStatus)
}
