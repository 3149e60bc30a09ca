package handler

import (
	"net/http"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/rota"
)

// 日工作量记录复用排班记录的存储，范围是整个日期，team_id 恒为 0。
const workloadTeamID int64 = 0

func (h *Handler) GetWorkloadDay(w http.ResponseWriter, r *http.Request) {
	dateID := r.Context().Value(WorkloadDayCtx).(string)

	records, err := h.repository.GetAssignmentsByScope(dateID, workloadTeamID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	grid := rota.NewGrid(rota.KindDailyWorkload)
	grid.Load(records)

	data := struct {
		Assignments []*domain.RotaAssignment `json:"assignments"`
	}{
		Assignments: grid.Flatten(dateID, workloadTeamID),
	}

	h.successResponse(w, r, "获取日工作量成功", data)
}

func (h *Handler) SaveWorkloadDay(w http.ResponseWriter, r *http.Request) {
	dateID := r.Context().Value(WorkloadDayCtx).(string)

	var req struct {
		Assignments []*domain.RotaAssignment `json:"assignments" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := validateAssignments(req.Assignments); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 展平会去重并丢弃还没有指派员工的卡片
	grid := rota.NewGrid(rota.KindDailyWorkload)
	grid.Load(req.Assignments)
	records := grid.Flatten(dateID, workloadTeamID)

	if err := h.repository.ReplaceAssignments(dateID, workloadTeamID, records); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := struct {
		Assignments []*domain.RotaAssignment `json:"assignments"`
	}{
		Assignments: records,
	}

	h.successResponse(w, r, "保存日工作量成功", data)
}

func (h *Handler) CopyPreviousWorkloadDay(w http.ResponseWriter, r *http.Request) {
	dateID := r.Context().Value(WorkloadDayCtx).(string)

	var req struct {
		Confirmed bool `json:"confirmed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	prevDateID, err := rota.PreviousDateID(dateID)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	prev, err := h.repository.GetAssignmentsByScope(prevDateID, workloadTeamID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(prev) == 0 {
		h.errorResponse(w, r, "前一天没有工作量记录")
		return
	}

	current, err := h.repository.GetAssignmentsByScope(dateID, workloadTeamID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 当天已有内容时覆盖操作需要确认
	if len(current) > 0 && !req.Confirmed {
		data := struct {
			NeedsConfirmation bool `json:"needsConfirmation"`
		}{
			NeedsConfirmation: true,
		}
		h.successResponse(w, r, "当天已有工作量记录，确认后前一天的内容将覆盖对应格子", data)
		return
	}

	grid := rota.NewGrid(rota.KindDailyWorkload)
	grid.Load(current)
	grid.CopyFromPrevious(prev, dateID)
	records := grid.Flatten(dateID, workloadTeamID)

	if err := h.repository.ReplaceAssignments(dateID, workloadTeamID, records); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := struct {
		Assignments []*domain.RotaAssignment `json:"assignments"`
	}{
		Assignments: records,
	}

	h.successResponse(w, r, "复制前一天工作量成功", data)
}

func (h *Handler) ClearWorkloadDay(w http.ResponseWriter, r *http.Request) {
	dateID := r.Context().Value(WorkloadDayCtx).(string)

	var req struct {
		Confirmed bool `json:"confirmed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !req.Confirmed {
		data := struct {
			NeedsConfirmation bool `json:"needsConfirmation"`
		}{
			NeedsConfirmation: true,
		}
		h.successResponse(w, r, "清空操作不可恢复，需要确认", data)
		return
	}

	if err := h.repository.DeleteAssignmentsByScope(dateID, workloadTeamID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "清空日工作量成功", nil)
}
