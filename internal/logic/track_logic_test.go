package logic

import (
	"testing"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackToggle(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")
	project := createProject(t, db, user.Id, "老屋修繕計畫", daysFromNow(11), daysFromNow(40))

	logic := NewTrackLogic(db)

	tracking, err := logic.Toggle(user.Id, project.Id)
	require.NoError(t, err)
	assert.True(t, tracking)

	tracking, err = logic.Toggle(user.Id, project.Id)
	require.NoError(t, err)
	assert.False(t, tracking)

	var count int64
	require.NoError(t, db.Model(&model.TrackModel{}).
		Where("user_id = ?", user.Id).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTrackToggleProjectNotFound(t *testing.T) {
	db := newTestDB(t)
	logic := NewTrackLogic(db)

	_, err := logic.Toggle(1, 9999)
	require.Error(t, err)
	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	assert.Equal(t, "查無此提案", appErr.Message)
}

func TestTrackList(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")
	tracked := createProject(t, db, user.Id, "老屋修繕計畫", daysFromNow(11), daysFromNow(40))
	createProject(t, db, user.Id, "兒童閱讀計畫", daysFromNow(11), daysFromNow(40))

	logic := NewTrackLogic(db)
	_, err := logic.Toggle(user.Id, tracked.Id)
	require.NoError(t, err)

	items, meta, err := logic.List(user.Id, pagination.Request{PageNo: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, meta.Count)
	assert.Equal(t, tracked.Id, items[0].Id)
	assert.True(t, items[0].TrackingStatus)
}
