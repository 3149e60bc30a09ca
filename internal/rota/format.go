package rota

import (
	"fmt"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

// FormatTimeOfDay 把 "HH:MM" 格式的 24 小时时间渲染成 12 小时制，
// 如 "09:00" -> "9:00am"，"17:30" -> "5:30pm"。解析失败时原样返回。
func FormatTimeOfDay(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}

	suffix := "am"
	hour := t.Hour()
	if hour >= 12 {
		suffix = "pm"
	}

	hour = hour % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d%s", hour, t.Minute(), suffix)
}

// FormatShiftTime 返回卡片班次时间的展示文本：
// 预设班次返回预设的时间描述，自定义班次渲染起止时间，未设置班次返回空串。
func FormatShiftTime(a *Assignment, presets []*domain.ShiftPreset) string {
	if a.CustomShift {
		return FormatTimeOfDay(a.CustomStart) + " - " + FormatTimeOfDay(a.CustomEnd)
	}

	if a.ShiftPresetID != 0 {
		for _, preset := range presets {
			if preset.ID == a.ShiftPresetID {
				return preset.Label
			}
		}
	}

	return ""
}
