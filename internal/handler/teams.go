package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DepartmentID int64  `json:"departmentID" validate:"required"`
		Name         string `json:"name" validate:"required"`
		Description  string `json:"description"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	team := &domain.Team{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Description:  req.Description,
	}

	if err := h.repository.CreateTeam(team); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_department_id_fkey":
			h.badRequest(w, r, errors.New("科室不存在"))
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_name_key":
			h.badRequest(w, r, errors.New("团队名称已存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建团队成功", team)
}

func (h *Handler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.repository.GetAllTeams()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取团队列表成功", teams)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team := r.Context().Value(TeamCtx).(*domain.Team)
	h.successResponse(w, r, "获取团队信息成功", team)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
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

	team := r.Context().Value(TeamCtx).(*domain.Team)

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}

	if err := h.repository.UpdateTeam(team); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "teams_name_key":
			h.badRequest(w, r, errors.New("团队名称已存在"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新团队信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新团队信息成功", team)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	team := r.Context().Value(TeamCtx).(*domain.Team)

	if err := h.repository.DeleteTeam(team.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_team_id_fkey":
			h.badRequest(w, r, errors.New("团队下仍有成员，无法删除"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除团队成功", nil)
}
