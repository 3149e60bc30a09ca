package rota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellKeyDeterminism(t *testing.T) {
	a := WeekCell("2025-W9", 42, 3, 7)
	b := WeekCell("2025-W9", 42, 3, 7)

	assert.Equal(t, a, b)

	cells := map[CellKey]int{a: 1}
	cells[b]++
	assert.Len(t, cells, 1)
}

func TestCellKeyDistinctness(t *testing.T) {
	base := WeekCell("2025-W9", 42, 3, 7)

	variants := []CellKey{
		WeekCell("2025-W10", 42, 3, 7),
		WeekCell("2025-W9", 43, 3, 7),
		WeekCell("2025-W9", 42, 4, 7),
		WeekCell("2025-W9", 42, 3, 8),
	}

	for _, v := range variants {
		assert.NotEqual(t, base, v)
	}
}

func TestWeekCellAndDateCellDoNotCollide(t *testing.T) {
	// 即使数字部分相同，周键和日键的 PeriodID 格式不同，永远不会相等
	week := WeekCell("2025-W9", 5, 0, 0)
	date := DateCell("2025-03-01", 5)

	assert.NotEqual(t, week, date)
}

func TestValidWeekID(t *testing.T) {
	valid := []string{"2025-W1", "2025-W9", "2025-W10", "2025-W53", "1999-W52"}
	for _, weekID := range valid {
		assert.True(t, ValidWeekID(weekID), weekID)
	}

	invalid := []string{"", "2025-W0", "2025-W54", "2025-W09", "2025W9", "25-W9", "2025-w9", "2025-W9x"}
	for _, weekID := range invalid {
		assert.False(t, ValidWeekID(weekID), weekID)
	}
}

func TestWeekIDOf(t *testing.T) {
	// 2025-03-01 是周六，属于 2025 年第 9 周
	assert.Equal(t, "2025-W9", WeekIDOf(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	// 2024-12-30 是周一，按 ISO 规则属于 2025 年第 1 周
	assert.Equal(t, "2025-W1", WeekIDOf(time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)))
}

func TestPreviousWeekID(t *testing.T) {
	prev, err := PreviousWeekID("2025-W9")
	require.NoError(t, err)
	assert.Equal(t, "2025-W8", prev)
}

func TestPreviousWeekIDYearWrap(t *testing.T) {
	// 2024 年有 52 个 ISO 周
	prev, err := PreviousWeekID("2025-W1")
	require.NoError(t, err)
	assert.Equal(t, "2024-W52", prev)

	// 2020 年有 53 个 ISO 周
	prev, err = PreviousWeekID("2021-W1")
	require.NoError(t, err)
	assert.Equal(t, "2020-W53", prev)
}

func TestPreviousWeekIDInvalid(t *testing.T) {
	_, err := PreviousWeekID("2025-03-01")
	assert.Error(t, err)
}

func TestValidDateID(t *testing.T) {
	assert.True(t, ValidDateID("2025-03-01"))
	assert.False(t, ValidDateID("2025-3-1"))
	assert.False(t, ValidDateID("2025-13-01"))
	assert.False(t, ValidDateID("2025-W9"))
}

func TestPreviousDateID(t *testing.T) {
	prev, err := PreviousDateID("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", prev)

	// 闰年二月
	prev, err = PreviousDateID("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", prev)

	prev, err = PreviousDateID("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", prev)
}
