package rota

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

// Assignment 是排班表中一张尚未落库的卡片。
// 周视图中卡片所属的员工由格子的键决定，AssigneeID 恒为 0；
// 日视图中卡片所属的病区由键决定，AssigneeID 记录卡片上选择的员工（0 表示尚未指派）。
type Assignment struct {
	ID            string          `json:"id"`
	AssigneeID    int64           `json:"assigneeID"`
	Location      domain.Location `json:"location"`
	ShiftPresetID int64           `json:"shiftPresetID"`
	CustomShift   bool            `json:"customShift"`
	CustomStart   string          `json:"customStart"`
	CustomEnd     string          `json:"customEnd"`
	Notes         string          `json:"notes"`
}

// AssignmentPatch 表示对卡片的部分更新，为 nil 的字段保持不变。
// 地点相关的两个字段互斥：设置其中一个会清空另一个。
type AssignmentPatch struct {
	AssigneeID     *int64
	WardID         *int64 // 0 表示清除目录地点
	CustomLocation *string
	ShiftPresetID  *int64 // 设置预设班次会同时关闭自定义时间
	CustomShift    *bool
	CustomStart    *string
	CustomEnd      *string
	Notes          *string
}

func (a *Assignment) apply(patch AssignmentPatch) {
	if patch.AssigneeID != nil {
		a.AssigneeID = *patch.AssigneeID
	}
	if patch.WardID != nil {
		if *patch.WardID == 0 {
			a.Location = domain.NoLocation()
		} else {
			a.Location = domain.CatalogLocation(*patch.WardID)
		}
	}
	if patch.CustomLocation != nil {
		if *patch.CustomLocation == "" {
			a.Location = domain.NoLocation()
		} else {
			a.Location = domain.CustomLocation(*patch.CustomLocation)
		}
	}
	if patch.ShiftPresetID != nil {
		a.ShiftPresetID = *patch.ShiftPresetID
		a.CustomShift = false
		a.CustomStart = ""
		a.CustomEnd = ""
	}
	if patch.CustomShift != nil {
		a.CustomShift = *patch.CustomShift
		if a.CustomShift {
			a.ShiftPresetID = 0
		}
	}
	if patch.CustomStart != nil {
		a.CustomStart = *patch.CustomStart
	}
	if patch.CustomEnd != nil {
		a.CustomEnd = *patch.CustomEnd
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
}

// clone 返回卡片内容的副本（保留 ID，由调用方决定是否重新生成）。
func (a *Assignment) clone() *Assignment {
	cloned := *a
	return &cloned
}

var (
	ErrNoAssignee    = errors.New("卡片尚未指派员工，无法落库")
	ErrInvalidWeekID = errors.New("无效的周编号")
	ErrInvalidDay    = errors.New("无效的星期下标")
)

// Promote 将卡片绑定到具体的员工、团队、周和星期，生成可落库的排班记录。
// 卡片的其余字段原样保留。
func Promote(a *Assignment, userID int64, teamID int64, weekID string, dayIndex int32) (*domain.RotaAssignment, error) {
	if userID == 0 {
		return nil, ErrNoAssignee
	}
	if !ValidWeekID(weekID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWeekID, weekID)
	}
	if dayIndex < 0 || dayIndex > 6 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, dayIndex)
	}

	return &domain.RotaAssignment{
		ID:            a.ID,
		WeekID:        weekID,
		TeamID:        teamID,
		UserID:        userID,
		DayIndex:      dayIndex,
		Location:      a.Location,
		ShiftPresetID: a.ShiftPresetID,
		CustomShift:   a.CustomShift,
		CustomStart:   a.CustomStart,
		CustomEnd:     a.CustomEnd,
		Notes:         a.Notes,
	}, nil
}

func newAssignmentID() string {
	return uuid.NewString()
}
