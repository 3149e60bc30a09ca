package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/config"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

// newTestHandler 构造一个只带校验器的 Handler。
// repository 等依赖为 nil：预期在触达持久层之前就返回的用例里，
// 任何对依赖的意外访问都会让测试直接 panic 失败。
func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	h, err := NewHandler(&config.Config{}, nil, nil, nil)
	require.NoError(t, err)
	return h
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

const badCustomShiftBody = `{
	"assignments": [{
		"id": "a1",
		"weekID": "2025-W9",
		"teamID": 7,
		"userID": 42,
		"dayIndex": 0,
		"location": {"kind": "catalog", "wardID": 3},
		"customShift": true,
		"customStart": "9am",
		"customEnd": "17:30"
	}]
}`

func TestSaveRotaWeekRejectsInvalidCustomShiftTime(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPut, "/rota/7/2025-W9", strings.NewReader(badCustomShiftBody))
	ctx := context.WithValue(r.Context(), RotaScopeCtx, &RotaScope{
		Team:   &domain.Team{ID: 7, DepartmentID: 1},
		WeekID: "2025-W9",
	})
	ctx = context.WithValue(ctx, MyInfoCtx, &domain.User{ID: 1})

	w := httptest.NewRecorder()
	h.SaveRotaWeek(w, r.WithContext(ctx))

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "时间格式错误")
}

func TestPublishRotaWeekRejectsInvalidCustomShiftTime(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/rota/7/2025-W9/publish", strings.NewReader(badCustomShiftBody))
	ctx := context.WithValue(r.Context(), RotaScopeCtx, &RotaScope{
		Team:   &domain.Team{ID: 7, DepartmentID: 1},
		WeekID: "2025-W9",
	})
	ctx = context.WithValue(ctx, MyInfoCtx, &domain.User{ID: 1})

	w := httptest.NewRecorder()
	h.PublishRotaWeek(w, r.WithContext(ctx))

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "时间格式错误")
}

func TestSaveWorkloadDayRejectsInvalidCustomShiftTime(t *testing.T) {
	h := newTestHandler(t)

	body := `{
		"assignments": [{
			"id": "a1",
			"weekID": "2025-03-01",
			"userID": 42,
			"location": {"kind": "catalog", "wardID": 5},
			"customShift": true,
			"customStart": "09:00",
			"customEnd": "下午五点"
		}]
	}`

	r := httptest.NewRequest(http.MethodPut, "/workload/2025-03-01", strings.NewReader(body))
	ctx := context.WithValue(r.Context(), WorkloadDayCtx, "2025-03-01")

	w := httptest.NewRecorder()
	h.SaveWorkloadDay(w, r.WithContext(ctx))

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "时间格式错误")
}
