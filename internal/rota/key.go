package rota

import (
	"fmt"
	"regexp"
	"time"
)

// CellKey 是排班表格子的复合键。
// 直接用结构体做 map 的键，而不是拼接字符串，这样即使各个 ID 中含有分隔符也不会产生键冲突。
type CellKey struct {
	PeriodID string // 周视图为周编号（如 2025-W9），日视图为日期（如 2025-03-01）
	EntityID int64  // 周视图为员工 ID，日视图为病区 ID
	DayIndex int32  // 0~6，日视图恒为 0
	TeamID   int64  // 日视图恒为 0
}

// WeekCell 返回周排班视图中 (周, 员工, 星期, 团队) 对应的格子键。
func WeekCell(weekID string, userID int64, dayIndex int32, teamID int64) CellKey {
	return CellKey{
		PeriodID: weekID,
		EntityID: userID,
		DayIndex: dayIndex,
		TeamID:   teamID,
	}
}

// DateCell 返回日工作量视图中 (日期, 病区) 对应的格子键。
func DateCell(dateID string, wardID int64) CellKey {
	return CellKey{
		PeriodID: dateID,
		EntityID: wardID,
	}
}

// String 仅用于日志输出，系统中不会将其解析回 CellKey。
func (k CellKey) String() string {
	return fmt.Sprintf("%s-%d-%d-%d", k.PeriodID, k.EntityID, k.DayIndex, k.TeamID)
}

var weekIDPattern = regexp.MustCompile(`^\d{4}-W([1-9]|[1-4]\d|5[0-3])$`)

// ValidWeekID 检查周编号是否符合 YYYY-W{周数} 的格式。
func ValidWeekID(weekID string) bool {
	return weekIDPattern.MatchString(weekID)
}

// WeekIDOf 返回给定时间所在的 ISO 周的周编号。
func WeekIDOf(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%d", year, week)
}

// weeksInYear 返回某一年的 ISO 周数（52 或 53）。
// 12 月 28 日总是位于当年的最后一个 ISO 周。
func weeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// PreviousWeekID 返回上一周的周编号，第一周会回卷到上一年的最后一周。
func PreviousWeekID(weekID string) (string, error) {
	if !ValidWeekID(weekID) {
		return "", fmt.Errorf("无效的周编号: %s", weekID)
	}

	var year, week int
	if _, err := fmt.Sscanf(weekID, "%d-W%d", &year, &week); err != nil {
		return "", fmt.Errorf("无效的周编号: %s", weekID)
	}

	if week > 1 {
		return fmt.Sprintf("%d-W%d", year, week-1), nil
	}

	return fmt.Sprintf("%d-W%d", year-1, weeksInYear(year-1)), nil
}

const dateIDLayout = "2006-01-02"

// ValidDateID 检查日期编号是否符合 YYYY-MM-DD 的格式。
func ValidDateID(dateID string) bool {
	_, err := time.Parse(dateIDLayout, dateID)
	return err == nil
}

// PreviousDateID 返回前一天的日期编号。
func PreviousDateID(dateID string) (string, error) {
	t, err := time.Parse(dateIDLayout, dateID)
	if err != nil {
		return "", fmt.Errorf("无效的日期编号: %s", dateID)
	}
	return t.AddDate(0, 0, -1).Format(dateIDLayout), nil
}
