package logic

import (
	"testing"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/apperr"
	"github.com/Move-Move-CrowdFunding/movemove-api/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationCreateRequiresContent(t *testing.T) {
	db := newTestDB(t)
	logic := NewNotificationLogic(db, nil)
	err := logic.Create(nil, 1, 1, "   ")
	assert.EqualError(t, err, "請輸入通知內容")
}

func TestNotificationListMarksPageRead(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")
	project := createProject(t, db, user.Id, "老屋修繕計畫", daysFromNow(11), daysFromNow(40))

	logic := NewNotificationLogic(db, nil)
	require.NoError(t, logic.Create(nil, user.Id, project.Id, "通知一"))
	require.NoError(t, logic.Create(nil, user.Id, project.Id, "通知二"))
	require.NoError(t, logic.Create(nil, user.Id, project.Id, "通知三"))

	items, meta, unread, err := logic.List(user.Id, pagination.Request{PageNo: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 3, meta.Count)
	assert.True(t, meta.HasNext)
	// 当前页两笔已读，剩一笔未读
	assert.EqualValues(t, 1, unread)
	assert.Equal(t, "老屋修繕計畫", items[0].Project.Title)

	// 再取同一页不再减少未读数
	_, _, unread, err = logic.List(user.Id, pagination.Request{PageNo: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestNotificationListOutOfRangeIs404(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "user@example.com")
	project := createProject(t, db, user.Id, "老屋修繕計畫", daysFromNow(11), daysFromNow(40))

	logic := NewNotificationLogic(db, nil)
	require.NoError(t, logic.Create(nil, user.Id, project.Id, "通知一"))

	_, _, _, err := logic.List(user.Id, pagination.Request{PageNo: 9, PageSize: 10})
	require.Error(t, err)
	assert.Equal(t, apperr.KindPageOutOfRange, apperr.From(err).Kind)
}

func TestNotificationUnreadCountScopedToUser(t *testing.T) {
	db := newTestDB(t)
	a := createUser(t, db, "a@example.com")
	b := createUser(t, db, "b@example.com")
	project := createProject(t, db, a.Id, "老屋修繕計畫", daysFromNow(11), daysFromNow(40))

	logic := NewNotificationLogic(db, nil)
	require.NoError(t, logic.Create(nil, a.Id, project.Id, "給A的通知"))

	count, err := logic.UnreadCount(a.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = logic.UnreadCount(b.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}
