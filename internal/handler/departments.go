package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dept := &domain.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.repository.CreateDepartment(dept); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "departments_name_key":
			h.badRequest(w, r, errors.New("科室名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建科室成功", dept)
}

func (h *Handler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.repository.GetAllDepartments()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取科室列表成功", depts)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	dept := r.Context().Value(DepartmentCtx).(*domain.Department)
	h.successResponse(w, r, "获取科室信息成功", dept)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dept := r.Context().Value(DepartmentCtx).(*domain.Department)

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}

	if err := h.repository.UpdateDepartment(dept); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "departments_name_key":
			h.badRequest(w, r, errors.New("科室名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新科室信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新科室信息成功", dept)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	dept := r.Context().Value(DepartmentCtx).(*domain.Department)

	if err := h.repository.DeleteDepartment(dept.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_department_id_fkey":
			h.badRequest(w, r, errors.New("科室下仍有团队，无法删除"))
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "wards_department_id_fkey":
			h.badRequest(w, r, errors.New("科室下仍有病区，无法删除"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除科室成功", nil)
}
