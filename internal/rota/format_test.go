package rota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func TestFormatTimeOfDay(t *testing.T) {
	cases := map[string]string{
		"09:00": "9:00am",
		"00:15": "12:15am",
		"12:00": "12:00pm",
		"17:30": "5:30pm",
		"23:59": "11:59pm",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, FormatTimeOfDay(input), input)
	}

	// 解析失败时原样返回
	assert.Equal(t, "not-a-time", FormatTimeOfDay("not-a-time"))
}

func TestFormatShiftTime(t *testing.T) {
	presets := []*domain.ShiftPreset{
		{ID: 1, Name: "早班", Label: "早", StartTime: "08:00", EndTime: "16:00"},
		{ID: 2, Name: "夜班", Label: "夜", StartTime: "00:00", EndTime: "08:00"},
	}

	assert.Equal(t, "早", FormatShiftTime(&Assignment{ShiftPresetID: 1}, presets))

	// 自定义班次优先于预设
	custom := &Assignment{ShiftPresetID: 1, CustomShift: true, CustomStart: "09:00", CustomEnd: "17:30"}
	assert.Equal(t, "9:00am - 5:30pm", FormatShiftTime(custom, presets))

	// 预设不存在或未设置班次时返回空串
	assert.Empty(t, FormatShiftTime(&Assignment{ShiftPresetID: 99}, presets))
	assert.Empty(t, FormatShiftTime(&Assignment{}, presets))
}
