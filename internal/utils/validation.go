package utils

import (
	"errors"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

// ValidateShiftPresetTime 检查班次预设的起止时间格式是否合法、结束时间是否晚于开始时间。
func ValidateShiftPresetTime(preset *domain.ShiftPreset) error {
	startTime, err := time.Parse("15:04", preset.StartTime)
	if err != nil {
		return errors.New("班次开始时间格式错误")
	}
	endTime, err := time.Parse("15:04", preset.EndTime)
	if err != nil {
		return errors.New("班次结束时间格式错误")
	}
	if !endTime.After(startTime) {
		return errors.New("班次结束时间必须晚于开始时间")
	}
	return nil
}

// ValidateCustomShiftTime 检查卡片上自定义班次的起止时间。
// 自定义班次允许跨天（夜班），因此只校验格式，不要求结束时间晚于开始时间。
func ValidateCustomShiftTime(rec *domain.RotaAssignment) error {
	if !rec.CustomShift {
		return nil
	}
	if _, err := time.Parse("15:04", rec.CustomStart); err != nil {
		return errors.New("自定义班次开始时间格式错误")
	}
	if _, err := time.Parse("15:04", rec.CustomEnd); err != nil {
		return errors.New("自定义班次结束时间格式错误")
	}
	return nil
}
