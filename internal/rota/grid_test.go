package rota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func weekRecord(id string, weekID string, userID int64, day int32, teamID int64) *domain.RotaAssignment {
	return &domain.RotaAssignment{
		ID:       id,
		WeekID:   weekID,
		TeamID:   teamID,
		UserID:   userID,
		DayIndex: day,
		Location: domain.NoLocation(),
	}
}

func TestGridAddRemoveRoundTrip(t *testing.T) {
	g := NewGrid(KindWeekRota)
	key := WeekCell("2025-W9", 42, 3, 7)

	a := g.Add(key)
	require.NotEmpty(t, a.ID)
	assert.Len(t, g.Cards(key), 1)

	removed := g.Remove(key, a.ID)
	assert.True(t, removed)
	assert.Empty(t, g.Cards(key))

	// 再删一次应当静默失败
	assert.False(t, g.Remove(key, a.ID))
}

func TestGridUpdatePartial(t *testing.T) {
	g := NewGrid(KindWeekRota)
	key := WeekCell("2025-W9", 42, 3, 7)

	a := g.Add(key)
	g.Update(key, a.ID, AssignmentPatch{WardID: int64Ptr(3), Notes: strPtr("带教新人")})

	cards := g.Cards(key)
	require.Len(t, cards, 1)
	assert.Equal(t, domain.CatalogLocation(3), cards[0].Location)
	assert.Equal(t, "带教新人", cards[0].Notes)

	// 只改备注，地点保持不变
	g.Update(key, a.ID, AssignmentPatch{Notes: strPtr("")})
	cards = g.Cards(key)
	assert.Equal(t, domain.CatalogLocation(3), cards[0].Location)
	assert.Empty(t, cards[0].Notes)
}

func TestGridUpdateMissingIDIsNoOp(t *testing.T) {
	g := NewGrid(KindWeekRota)
	key := WeekCell("2025-W9", 42, 3, 7)
	g.Add(key)

	assert.False(t, g.Update(key, "no-such-id", AssignmentPatch{Notes: strPtr("x")}))
}

func TestGridLoadIdempotent(t *testing.T) {
	records := []*domain.RotaAssignment{
		weekRecord("a1", "2025-W9", 42, 0, 7),
		weekRecord("a2", "2025-W9", 42, 1, 7),
		weekRecord("a3", "2025-W9", 43, 0, 7),
	}

	g := NewGrid(KindWeekRota)
	g.Load(records)
	first := g.Flatten("2025-W9", 7)

	g.Load(records)
	second := g.Flatten("2025-W9", 7)

	assert.Equal(t, first, second)
}

func TestGridLoadDedupesByID(t *testing.T) {
	// 同一个 ID 出现在两个格子里时后出现的获胜
	records := []*domain.RotaAssignment{
		weekRecord("dup", "2025-W9", 42, 0, 7),
		weekRecord("dup", "2025-W9", 42, 3, 7),
	}

	g := NewGrid(KindWeekRota)
	g.Load(records)

	assert.Empty(t, g.Cards(WeekCell("2025-W9", 42, 0, 7)))
	assert.Len(t, g.Cards(WeekCell("2025-W9", 42, 3, 7)), 1)

	flat := g.Flatten("2025-W9", 7)
	require.Len(t, flat, 1)
	assert.Equal(t, int32(3), flat[0].DayIndex)
}

func TestGridFlattenScopeAndOrder(t *testing.T) {
	g := NewGrid(KindWeekRota)
	g.Load([]*domain.RotaAssignment{
		weekRecord("a1", "2025-W9", 43, 1, 7),
		weekRecord("a2", "2025-W9", 42, 5, 7),
		weekRecord("a3", "2025-W9", 42, 0, 7),
		weekRecord("b1", "2025-W10", 42, 0, 7), // 其他周
		weekRecord("c1", "2025-W9", 42, 0, 8),  // 其他团队
	})

	flat := g.Flatten("2025-W9", 7)
	require.Len(t, flat, 3)

	// 按员工再按星期排序
	assert.Equal(t, "a3", flat[0].ID)
	assert.Equal(t, "a2", flat[1].ID)
	assert.Equal(t, "a1", flat[2].ID)
}

func TestGridFlattenDailySkipsUnassigned(t *testing.T) {
	g := NewGrid(KindDailyWorkload)
	key := DateCell("2025-03-01", 5)

	assigned := g.Add(key)
	g.Update(key, assigned.ID, AssignmentPatch{AssigneeID: int64Ptr(42)})
	g.Add(key) // 没有指派员工的卡片

	flat := g.Flatten("2025-03-01", 0)
	require.Len(t, flat, 1)
	assert.Equal(t, int64(42), flat[0].UserID)
	assert.Equal(t, domain.CatalogLocation(5), flat[0].Location)
	assert.Equal(t, "2025-03-01", flat[0].WeekID)
	assert.Zero(t, flat[0].TeamID)
}

func TestGridFlattenDailySkipsWardlessRecords(t *testing.T) {
	// 地点缺失或是自定义文本的日视图记录没有合法的病区归属，
	// 装载后落在病区 0 的格子里，保存时必须被丢弃而不是写成指向病区 0 的引用
	noLocation := &domain.RotaAssignment{
		ID:       "n1",
		WeekID:   "2025-03-01",
		UserID:   42,
		Location: domain.NoLocation(),
	}
	customLocation := &domain.RotaAssignment{
		ID:       "c1",
		WeekID:   "2025-03-01",
		UserID:   43,
		Location: domain.CustomLocation("门诊支援"),
	}
	valid := &domain.RotaAssignment{
		ID:       "v1",
		WeekID:   "2025-03-01",
		UserID:   44,
		Location: domain.CatalogLocation(5),
	}

	g := NewGrid(KindDailyWorkload)
	g.Load([]*domain.RotaAssignment{noLocation, customLocation, valid})

	flat := g.Flatten("2025-03-01", 0)
	require.Len(t, flat, 1)
	assert.Equal(t, "v1", flat[0].ID)
	assert.Equal(t, domain.CatalogLocation(5), flat[0].Location)
}

func TestGridDirtySemantics(t *testing.T) {
	g := NewGrid(KindWeekRota)
	key := WeekCell("2025-W9", 42, 3, 7)

	assert.False(t, g.Dirty())

	a := g.Add(key)
	assert.True(t, g.Dirty())

	g.MarkSaved()
	assert.False(t, g.Dirty())

	g.Update(key, a.ID, AssignmentPatch{Notes: strPtr("x")})
	assert.True(t, g.Dirty())

	// 重新加载服务端数据会丢弃本地修改并清除脏标记
	g.Load(nil)
	assert.False(t, g.Dirty())
}

func TestGridCopyFromPrevious(t *testing.T) {
	g := NewGrid(KindWeekRota)
	g.Load([]*domain.RotaAssignment{
		weekRecord("cur1", "2025-W9", 42, 0, 7), // 源周同格子有内容，会被覆盖
		weekRecord("cur2", "2025-W9", 99, 4, 7), // 源周没有这个格子，保持不变
	})

	prev := []*domain.RotaAssignment{
		weekRecord("old1", "2025-W8", 42, 0, 7),
		weekRecord("old2", "2025-W8", 43, 2, 7),
	}

	g.CopyFromPrevious(prev, "2025-W9")
	assert.True(t, g.Dirty())

	overwritten := g.Cards(WeekCell("2025-W9", 42, 0, 7))
	require.Len(t, overwritten, 1)
	assert.NotEqual(t, "old1", overwritten[0].ID)
	assert.NotEqual(t, "cur1", overwritten[0].ID)

	kept := g.Cards(WeekCell("2025-W9", 99, 4, 7))
	require.Len(t, kept, 1)
	assert.Equal(t, "cur2", kept[0].ID)

	copied := g.Cards(WeekCell("2025-W9", 43, 2, 7))
	assert.Len(t, copied, 1)

	// 展平后所有记录都落在目标周
	for _, rec := range g.Flatten("2025-W9", 7) {
		assert.Equal(t, "2025-W9", rec.WeekID)
	}
}

func TestGridClearScope(t *testing.T) {
	g := NewGrid(KindWeekRota)
	g.Load([]*domain.RotaAssignment{
		weekRecord("a1", "2025-W9", 42, 0, 7),
		weekRecord("a2", "2025-W9", 43, 1, 7),
		weekRecord("b1", "2025-W10", 42, 0, 7),
	})

	removed := g.ClearScope("2025-W9", 7)
	assert.Equal(t, 2, removed)
	assert.True(t, g.Dirty())

	assert.Empty(t, g.Flatten("2025-W9", 7))
	assert.Len(t, g.Flatten("2025-W10", 7), 1)
}

func TestGridCopyToWeekdays(t *testing.T) {
	g := NewGrid(KindWeekRota)
	key := WeekCell("2025-W9", 42, 2, 7)

	a := g.Add(key)
	g.Update(key, a.ID, AssignmentPatch{ShiftPresetID: int64Ptr(1), Notes: strPtr("常规班")})

	created := g.CopyToWeekdays(key, a.ID)
	assert.Equal(t, 6, created)

	ids := make(map[string]bool)
	for day := int32(0); day <= 6; day++ {
		cards := g.Cards(WeekCell("2025-W9", 42, day, 7))
		require.Len(t, cards, 1, "day %d", day)
		assert.Equal(t, "常规班", cards[0].Notes)
		assert.False(t, ids[cards[0].ID], "复制出的卡片必须有新 ID")
		ids[cards[0].ID] = true
	}
}

func TestGridAssignedStaffIDs(t *testing.T) {
	g := NewGrid(KindWeekRota)
	g.Load([]*domain.RotaAssignment{
		weekRecord("a1", "2025-W9", 43, 0, 7),
		weekRecord("a2", "2025-W9", 42, 1, 7),
		weekRecord("a3", "2025-W9", 42, 2, 7),
		weekRecord("b1", "2025-W10", 99, 0, 7),
	})

	assert.Equal(t, []int64{42, 43}, g.AssignedStaffIDs("2025-W9", 7))
}

func TestClipboardCopyPaste(t *testing.T) {
	g := NewGrid(KindWeekRota)
	source := WeekCell("2025-W9", 42, 0, 7)
	target := WeekCell("2025-W9", 43, 4, 7)

	a := g.Add(source)
	g.Update(source, a.ID, AssignmentPatch{WardID: int64Ptr(3), Notes: strPtr("接管病房")})
	g.MarkSaved()

	cb := NewClipboard()
	assert.True(t, cb.Empty())
	assert.Nil(t, cb.Paste(g, target))

	cb.Copy(g.Cards(source)[0])
	assert.False(t, cb.Empty())

	pasted := cb.Paste(g, target)
	require.NotNil(t, pasted)
	assert.NotEqual(t, a.ID, pasted.ID)
	assert.Equal(t, domain.CatalogLocation(3), pasted.Location)
	assert.Equal(t, "接管病房", pasted.Notes)
	assert.True(t, g.Dirty())

	// 粘贴是追加而不是覆盖
	second := cb.Paste(g, target)
	require.NotNil(t, second)
	assert.NotEqual(t, pasted.ID, second.ID)
	assert.Len(t, g.Cards(target), 2)

	// 源卡片不受影响
	assert.Equal(t, a.ID, g.Cards(source)[0].ID)
}
