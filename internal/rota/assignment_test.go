package rota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestApplyPatchLocationExclusive(t *testing.T) {
	a := &Assignment{ID: "a1", Location: domain.NoLocation()}

	a.apply(AssignmentPatch{WardID: int64Ptr(3)})
	assert.Equal(t, domain.CatalogLocation(3), a.Location)

	// 设置自定义地点会顶掉病区地点
	a.apply(AssignmentPatch{CustomLocation: strPtr("手术室三号间")})
	assert.Equal(t, domain.CustomLocation("手术室三号间"), a.Location)

	// 反过来也一样
	a.apply(AssignmentPatch{WardID: int64Ptr(5)})
	assert.Equal(t, domain.CatalogLocation(5), a.Location)

	a.apply(AssignmentPatch{WardID: int64Ptr(0)})
	assert.True(t, a.Location.IsNone())
}

func TestApplyPatchShiftExclusive(t *testing.T) {
	a := &Assignment{ID: "a1"}

	a.apply(AssignmentPatch{CustomShift: boolPtr(true), CustomStart: strPtr("09:00"), CustomEnd: strPtr("17:30")})
	assert.True(t, a.CustomShift)
	assert.Equal(t, "09:00", a.CustomStart)

	// 选择预设班次会清除自定义时间
	a.apply(AssignmentPatch{ShiftPresetID: int64Ptr(2)})
	assert.Equal(t, int64(2), a.ShiftPresetID)
	assert.False(t, a.CustomShift)
	assert.Empty(t, a.CustomStart)
	assert.Empty(t, a.CustomEnd)

	// 切回自定义班次会清除预设
	a.apply(AssignmentPatch{CustomShift: boolPtr(true)})
	assert.Zero(t, a.ShiftPresetID)
}

func TestPromote(t *testing.T) {
	a := &Assignment{
		ID:            "a1",
		Location:      domain.CatalogLocation(3),
		ShiftPresetID: 2,
		Notes:         "交接注意事项",
	}

	rec, err := Promote(a, 42, 7, "2025-W9", 3)
	require.NoError(t, err)

	assert.Equal(t, "a1", rec.ID)
	assert.Equal(t, "2025-W9", rec.WeekID)
	assert.Equal(t, int64(7), rec.TeamID)
	assert.Equal(t, int64(42), rec.UserID)
	assert.Equal(t, int32(3), rec.DayIndex)
	assert.Equal(t, domain.CatalogLocation(3), rec.Location)
	assert.Equal(t, int64(2), rec.ShiftPresetID)
	assert.Equal(t, "交接注意事项", rec.Notes)
}

func TestPromoteRejectsInvalidInput(t *testing.T) {
	a := &Assignment{ID: "a1"}

	_, err := Promote(a, 0, 7, "2025-W9", 3)
	assert.ErrorIs(t, err, ErrNoAssignee)

	_, err = Promote(a, 42, 7, "not-a-week", 3)
	assert.ErrorIs(t, err, ErrInvalidWeekID)

	_, err = Promote(a, 42, 7, "2025-W9", 7)
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = Promote(a, 42, 7, "2025-W9", -1)
	assert.ErrorIs(t, err, ErrInvalidDay)
}
