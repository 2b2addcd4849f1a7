package logic

import (
	"testing"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideApprove(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner.Id, "流浪動物之家", daysFromNow(11), daysFromNow(40))
	createReview(t, db, project.Id, model.ReviewStatusPending, "")

	logic := NewReviewLogic(db, nil)
	require.NoError(t, logic.Decide(project.Id, model.ReviewStatusApproved, "", 99))

	var entries []model.ReviewLogModel
	require.NoError(t, db.Where("project_id = ? AND status = ?",
		project.Id, model.ReviewStatusApproved).Find(&entries).Error)
	require.Len(t, entries, 1)

	var notification model.NotificationModel
	require.NoError(t, db.Where("user_id = ?", owner.Id).First(&notification).Error)
	assert.Equal(t, "您的提案「流浪動物之家」已通過審核", notification.Content)
	assert.False(t, notification.IsRead)
}

func TestDecideApproveTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner.Id, "流浪動物之家", daysFromNow(11), daysFromNow(40))

	logic := NewReviewLogic(db, nil)
	require.NoError(t, logic.Decide(project.Id, model.ReviewStatusApproved, "", 99))

	err := logic.Decide(project.Id, model.ReviewStatusApproved, "", 99)
	require.Error(t, err)
	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)
	assert.Equal(t, "該提案已核准", appErr.Message)

	// 冲突时不产生新的审核记录与通知
	var reviewCount, notificationCount int64
	require.NoError(t, db.Model(&model.ReviewLogModel{}).
		Where("project_id = ? AND status = ?", project.Id, model.ReviewStatusApproved).
		Count(&reviewCount).Error)
	assert.EqualValues(t, 1, reviewCount)
	require.NoError(t, db.Model(&model.NotificationModel{}).
		Where("user_id = ?", owner.Id).Count(&notificationCount).Error)
	assert.EqualValues(t, 1, notificationCount)
}

func TestDecideApproveAfterRejectConflictsToo(t *testing.T) {
	// 核准一生至多一次，即使中间被否准过
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner.Id, "兒童閱讀計畫", daysFromNow(11), daysFromNow(40))

	logic := NewReviewLogic(db, nil)
	require.NoError(t, logic.Decide(project.Id, model.ReviewStatusApproved, "", 99))
	require.NoError(t, logic.Decide(project.Id, model.ReviewStatusRejected, "內容需補充", 99))

	err := logic.Decide(project.Id, model.ReviewStatusApproved, "", 99)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.From(err).Kind)
}

func TestDecideReject(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner.Id, "兒童閱讀計畫", daysFromNow(11), daysFromNow(40))

	logic := NewReviewLogic(db, nil)
	require.NoError(t, logic.Decide(project.Id, model.ReviewStatusRejected, "  內容需補充  ", 99))

	var entry model.ReviewLogModel
	require.NoError(t, db.Where("project_id = ? AND status = ?",
		project.Id, model.ReviewStatusRejected).First(&entry).Error)
	assert.Equal(t, "內容需補充", entry.Content)

	var notification model.NotificationModel
	require.NoError(t, db.Where("user_id = ?", owner.Id).First(&notification).Error)
	assert.Equal(t, "您的提案「兒童閱讀計畫」未通過審核：內容需補充", notification.Content)
}

func TestDecideRejectRequiresReason(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	project := createProject(t, db, owner.Id, "兒童閱讀計畫", daysFromNow(11), daysFromNow(40))

	logic := NewReviewLogic(db, nil)
	err := logic.Decide(project.Id, model.ReviewStatusRejected, "   ", 99)
	assert.EqualError(t, err, "請輸入否准理由")
}

func TestDecideInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	logic := NewReviewLogic(db, nil)
	err := logic.Decide(1, 5, "", 99)
	assert.EqualError(t, err, "審核狀態碼錯誤")
}

func TestDecideProjectNotFound(t *testing.T) {
	db := newTestDB(t)
	logic := NewReviewLogic(db, nil)
	err := logic.Decide(12345, model.ReviewStatusApproved, "", 99)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.From(err).Kind)
}
