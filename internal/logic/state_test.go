package logic

import (
	"testing"

	"github.com/Move-Move-CrowdFunding/movemove-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateProject(endDate int64) *model.ProjectModel {
	return &model.ProjectModel{Id: 1, EndDate: endDate}
}

func TestDeriveStateEmptyLogIsPending(t *testing.T) {
	result, err := DeriveState(stateProject(2000), nil, 1000)
	require.NoError(t, err)
	assert.Equal(t, StatePending, result.State)
	assert.Empty(t, result.Content)
}

func TestDeriveStateLatestEntryWins(t *testing.T) {
	log := []model.ReviewLogModel{
		{Id: 1, Status: model.ReviewStatusRejected, Content: "資料不足", CreateTime: 100},
		{Id: 2, Status: model.ReviewStatusApproved, CreateTime: 200},
	}

	result, err := DeriveState(stateProject(2000), log, 1000)
	require.NoError(t, err)
	assert.Equal(t, StateApproved, result.State)
}

func TestDeriveStateSameSecondTakesLaterEntry(t *testing.T) {
	// 同秒写入的记录以顺序靠后者为准
	log := []model.ReviewLogModel{
		{Id: 1, Status: model.ReviewStatusApproved, CreateTime: 100},
		{Id: 2, Status: model.ReviewStatusRejected, Content: "重审", CreateTime: 100},
	}

	result, err := DeriveState(stateProject(2000), log, 1000)
	require.NoError(t, err)
	assert.Equal(t, StateRejected, result.State)
	assert.Equal(t, "重审", result.Content)
}

func TestDeriveStateApprovedAndPastEndDateIsEnded(t *testing.T) {
	log := []model.ReviewLogModel{
		{Id: 1, Status: model.ReviewStatusApproved, CreateTime: 100},
	}

	result, err := DeriveState(stateProject(500), log, 1000)
	require.NoError(t, err)
	assert.Equal(t, StateEnded, result.State)
}

func TestDeriveStateUnapprovedNeverEnds(t *testing.T) {
	// 未核准的提案即使过了截止日也不会转 ENDED
	cases := []struct {
		name   string
		status int
		want   ProjectState
	}{
		{"pending", model.ReviewStatusPending, StatePending},
		{"rejected", model.ReviewStatusRejected, StateRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := []model.ReviewLogModel{
				{Id: 1, Status: tc.status, CreateTime: 100},
			}
			result, err := DeriveState(stateProject(500), log, 1000)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.State)
		})
	}
}

func TestDeriveStateMissingEndDate(t *testing.T) {
	_, err := DeriveState(stateProject(0), nil, 1000)
	assert.EqualError(t, err, "提案資料不完整，缺少截止日期")

	_, err = DeriveState(nil, nil, 1000)
	assert.Error(t, err)
}

func TestStateCode(t *testing.T) {
	assert.Equal(t, StateCodePending, StateCode(model.ReviewStatusPending, 500, 1000))
	assert.Equal(t, StateCodeRejected, StateCode(model.ReviewStatusRejected, 500, 1000))
	assert.Equal(t, StateCodeApproved, StateCode(model.ReviewStatusApproved, 2000, 1000))
	assert.Equal(t, StateCodeEnded, StateCode(model.ReviewStatusApproved, 500, 1000))
}
