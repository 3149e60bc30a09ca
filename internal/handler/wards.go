package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (h *Handler) CreateWard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DepartmentID int64  `json:"departmentID" validate:"required"`
		Name         string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ward := &domain.Ward{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
	}

	if err := h.repository.CreateWard(ward); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "wards_department_id_fkey":
			h.badRequest(w, r, errors.New("科室不存在"))
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "wards_name_key":
			h.badRequest(w, r, errors.New("病区名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建病区成功", ward)
}

func (h *Handler) GetAllWards(w http.ResponseWriter, r *http.Request) {
	wards, err := h.repository.GetAllWards()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取病区列表成功", wards)
}

func (h *Handler) GetWard(w http.ResponseWriter, r *http.Request) {
	ward := r.Context().Value(WardCtx).(*domain.Ward)
	h.successResponse(w, r, "获取病区信息成功", ward)
}

func (h *Handler) UpdateWard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ward := r.Context().Value(WardCtx).(*domain.Ward)

	if req.Name != nil {
		ward.Name = *req.Name
	}

	if err := h.repository.UpdateWard(ward); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "wards_name_key":
			h.badRequest(w, r, errors.New("病区名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新病区信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新病区信息成功", ward)
}

func (h *Handler) DeleteWard(w http.ResponseWriter, r *http.Request) {
	ward := r.Context().Value(WardCtx).(*domain.Ward)

	if err := h.repository.DeleteWard(ward.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除病区成功", nil)
}
