package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/utils"
)

func (h *Handler) CreateShiftPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required"`
		Label     string `json:"label" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	preset := &domain.ShiftPreset{
		Name:      req.Name,
		Label:     req.Label,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := utils.ValidateShiftPresetTime(preset); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShiftPreset(preset); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_presets_name_key":
			h.badRequest(w, r, errors.New("班次预设名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建班次预设成功", preset)
}

func (h *Handler) GetAllShiftPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.repository.GetAllShiftPresets()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次预设列表成功", presets)
}

func (h *Handler) GetShiftPreset(w http.ResponseWriter, r *http.Request) {
	preset := r.Context().Value(ShiftPresetCtx).(*domain.ShiftPreset)
	h.successResponse(w, r, "获取班次预设信息成功", preset)
}

func (h *Handler) UpdateShiftPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      *string `json:"name"`
		Label     *string `json:"label"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	preset := r.Context().Value(ShiftPresetCtx).(*domain.ShiftPreset)

	if req.Name != nil {
		preset.Name = *req.Name
	}
	if req.Label != nil {
		preset.Label = *req.Label
	}
	if req.StartTime != nil {
		preset.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		preset.EndTime = *req.EndTime
	}

	if err := utils.ValidateShiftPresetTime(preset); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateShiftPreset(preset); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_presets_name_key":
			h.badRequest(w, r, errors.New("班次预设名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新班次预设失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新班次预设成功", preset)
}

func (h *Handler) DeleteShiftPreset(w http.ResponseWriter, r *http.Request) {
	preset := r.Context().Value(ShiftPresetCtx).(*domain.ShiftPreset)

	if err := h.repository.DeleteShiftPreset(preset.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次预设成功", nil)
}
