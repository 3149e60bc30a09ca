package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func TestValidateShiftPresetTime(t *testing.T) {
	valid := &domain.ShiftPreset{StartTime: "08:00", EndTime: "16:00"}
	assert.NoError(t, ValidateShiftPresetTime(valid))

	badFormat := &domain.ShiftPreset{StartTime: "8点", EndTime: "16:00"}
	assert.Error(t, ValidateShiftPresetTime(badFormat))

	reversed := &domain.ShiftPreset{StartTime: "16:00", EndTime: "08:00"}
	assert.Error(t, ValidateShiftPresetTime(reversed))

	equal := &domain.ShiftPreset{StartTime: "08:00", EndTime: "08:00"}
	assert.Error(t, ValidateShiftPresetTime(equal))
}

func TestValidateCustomShiftTime(t *testing.T) {
	// 非自定义班次不校验时间字段
	assert.NoError(t, ValidateCustomShiftTime(&domain.RotaAssignment{CustomShift: false}))

	ok := &domain.RotaAssignment{CustomShift: true, CustomStart: "09:00", CustomEnd: "17:30"}
	assert.NoError(t, ValidateCustomShiftTime(ok))

	// 夜班允许跨天
	overnight := &domain.RotaAssignment{CustomShift: true, CustomStart: "22:00", CustomEnd: "06:00"}
	assert.NoError(t, ValidateCustomShiftTime(overnight))

	bad := &domain.RotaAssignment{CustomShift: true, CustomStart: "9am", CustomEnd: "17:30"}
	assert.Error(t, ValidateCustomShiftTime(bad))
}
