package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/rota"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/utils"
)

// validateAssignments 逐条校验待保存记录上的自定义班次时间，
// 任何一条不合法都会使整个保存操作失败，不会写入任何数据。
func validateAssignments(records []*domain.RotaAssignment) error {
	for _, rec := range records {
		if err := utils.ValidateCustomShiftTime(rec); err != nil {
			return err
		}
	}
	return nil
}

// loadWeekStatusBook 把某一周的状态记录（如果存在）装入状态簿。
func (h *Handler) loadWeekStatusBook(key rota.StatusKey) (*rota.StatusBook, error) {
	book := rota.NewStatusBook()

	ws, err := h.repository.GetWeekStatus(key.WeekID, key.TeamID, key.OrgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book, nil
		}
		return nil, err
	}

	book.Load([]*domain.WeekStatus{ws})
	return book, nil
}

// persistWeekStatus 把状态簿中的记录落库：没有 ID 的记录是首次保存时隐式创建的。
func (h *Handler) persistWeekStatus(ws *domain.WeekStatus) error {
	if ws.ID == 0 {
		return h.repository.CreateWeekStatus(ws)
	}
	return h.repository.UpdateWeekStatus(ws)
}

func (h *Handler) GetRotaWeek(w http.ResponseWriter, r *http.Request) {
	scope := r.Context().Value(RotaScopeCtx).(*RotaScope)

	records, err := h.repository.GetAssignmentsByScope(scope.WeekID, scope.Team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 服务端返回的记录可能包含历史遗留的重复 ID，通过网格装载一遍来兜底去重
	grid := rota.NewGrid(rota.KindWeekRota)
	grid.Load(records)

	key := rota.StatusKey{WeekID: scope.WeekID, TeamID: scope.Team.ID, OrgID: scope.Team.DepartmentID}
	book, err := h.loadWeekStatusBook(key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	data := struct {
		Assignments []*domain.RotaAssignment `json:"assignments"`
		Status      domain.WeekStatusState   `json:"status"`
		StatusInfo  *domain.WeekStatus       `json:"statusInfo"`
	}{
		Assignments: grid.Flatten(scope.WeekID, scope.Team.ID),
		Status:      book.StateOf(key),
		StatusInfo:  book.Get(key),
	}

	h.successResponse(w, r, "获取周排班成功", data)
}

func (h *Handler) SaveRotaWeek(w http.ResponseWriter, r *http.Request) {
	scope := r.Context().Value(RotaScopeCtx).(*RotaScope)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

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

	// 通过网格走一遍展平逻辑：去重、丢弃不属于本范围或键不合法的卡片
	grid := rota.NewGrid(rota.KindWeekRota)
	grid.Load(req.Assignments)
	records := grid.Flatten(scope.WeekID, scope.Team.ID)

	if err := h.repository.ReplaceAssignments(scope.WeekID, scope.Team.ID, records); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	key := rota.StatusKey{WeekID: scope.WeekID, TeamID: scope.Team.ID, OrgID: scope.Team.DepartmentID}
	book, err := h.loadWeekStatusBook(key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ws := book.RecordSave(key, myInfo.ID, time.Now())
	if err := h.persistWeekStatus(ws); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "周状态已被他人修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	data := struct {
		Assignments []*domain.RotaAssignment `json:"assignments"`
		StatusInfo  *domain.WeekStatus       `json:"statusInfo"`
	}{
		Assignments: records,
		StatusInfo:  ws,
	}

	h.successResponse(w, r, "保存周排班成功", data)
}

func (h *Handler) PublishRotaWeek(w http.ResponseWriter, r *http.Request) {
	scope := r.Context().Value(RotaScopeCtx).(*RotaScope)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Assignments   []*domain.RotaAssignment `json:"assignments" validate:"required"`
		Confirmed     bool                     `json:"confirmed"`
		NotifyUserIDs []int64                  `json:"notifyUserIDs"`
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

	grid := rota.NewGrid(rota.KindWeekRota)
	grid.Load(req.Assignments)
	records := grid.Flatten(scope.WeekID, scope.Team.ID)

	teamUsers, err := h.repository.GetUsersByTeamID(scope.Team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 找出团队中这周没有被排到任何班次的员工
	assignedIDs := make(map[int64]bool)
	for _, id := range grid.AssignedStaffIDs(scope.WeekID, scope.Team.ID) {
		assignedIDs[id] = true
	}

	idleStaff := make([]*domain.User, 0)
	for _, user := range teamUsers {
		if !assignedIDs[user.ID] {
			idleStaff = append(idleStaff, user)
		}
	}

	// 存在空闲员工时需要调度员显式确认一次才允许发布
	if len(idleStaff) > 0 && !req.Confirmed {
		data := struct {
			NeedsConfirmation bool           `json:"needsConfirmation"`
			IdleStaff         []*domain.User `json:"idleStaff"`
		}{
			NeedsConfirmation: true,
			IdleStaff:         idleStaff,
		}
		h.successResponse(w, r, "本周仍有员工未排班，确认后才会发布", data)
		return
	}

	if err := h.repository.ReplaceAssignments(scope.WeekID, scope.Team.ID, records); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	key := rota.StatusKey{WeekID: scope.WeekID, TeamID: scope.Team.ID, OrgID: scope.Team.DepartmentID}
	book, err := h.loadWeekStatusBook(key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ws := book.Publish(key, myInfo.ID, time.Now())
	if err := h.persistWeekStatus(ws); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "周状态已被他人修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 只通知调度员勾选的收件人，不会自动群发
	usersByID := make(map[int64]*domain.User, len(teamUsers))
	for _, user := range teamUsers {
		usersByID[user.ID] = user
	}

	for _, userID := range req.NotifyUserIDs {
		user, exists := usersByID[userID]
		if !exists {
			continue
		}

		mailMessage := domain.MailMessage{
			Type: "rota_published",
			To:   user.Email,
			Data: domain.RotaPublishedMailData{
				FullName: user.FullName,
				TeamName: scope.Team.Name,
				WeekID:   scope.WeekID,
			},
		}

		if err := h.queueMail(mailMessage); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	data := struct {
		Assignments []*domain.RotaAssignment `json:"assignments"`
		StatusInfo  *domain.WeekStatus       `json:"statusInfo"`
	}{
		Assignments: records,
		StatusInfo:  ws,
	}

	h.successResponse(w, r, "发布周排班成功", data)
}

func (h *Handler) RevertRotaWeek(w http.ResponseWriter, r *http.Request) {
	scope := r.Context().Value(RotaScopeCtx).(*RotaScope)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	key := rota.StatusKey{WeekID: scope.WeekID, TeamID: scope.Team.ID, OrgID: scope.Team.DepartmentID}
	book, err := h.loadWeekStatusBook(key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if book.StateOf(key) != domain.WeekStatusPublished {
		h.errorResponse(w, r, "该周排班尚未发布，无需撤回")
		return
	}

	ws := book.Revert(key, myInfo.ID, time.Now())
	if err := h.persistWeekStatus(ws); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "周状态已被他人修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "撤回周排班成功", ws)
}

func (h *Handler) CopyPreviousRotaWeek(w http.ResponseWriter, r *http.Request) {
	scope := r.Context().Value(RotaScopeCtx).(*RotaScope)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Confirmed bool `json:"confirmed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	prevWeekID, err := rota.PreviousWeekID(scope.WeekID)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	prev, err := h.repository.GetAssignmentsByScope(prevWeekID, scope.Team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(prev) == 0 {
		h.errorResponse(w, r, "上一周没有排班记录")
		return
	}

	current, err := h.repository.GetAssignmentsByScope(scope.WeekID, scope.Team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 本周已有内容时覆盖操作需要确认
	if len(current) > 0 && !req.Confirmed {
		data := struct {
			NeedsConfirmation bool `json:"needsConfirmation"`
		}{
			NeedsConfirmation: true,
		}
		h.successResponse(w, r, "本周已有排班记录，确认后上一周的内容将覆盖对应格子", data)
		return
	}

	grid := rota.NewGrid(rota.KindWeekRota)
	grid.Load(current)
	grid.CopyFromPrevious(prev, scope.WeekID)
	records := grid.Flatten(scope.WeekID, scope.Team.ID)

	if err := h.repository.ReplaceAssignments(scope.WeekID, scope.Team.ID, records); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	key := rota.StatusKey{WeekID: scope.WeekID, TeamID: scope.Team.ID, OrgID: scope.Team.DepartmentID}
	book, err := h.loadWeekStatusBook(key)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ws := book.RecordSave(key, myInfo.ID, time.Now())
	if err := h.persistWeekStatus(ws); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "周状态已被他人修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	data := struct {
		Assignments []*domain.RotaAssignment `json:"assignments"`
		StatusInfo  *domain.WeekStatus       `json:"statusInfo"`
	}{
		Assignments: records,
		StatusInfo:  ws,
	}

	h.successResponse(w, r, "复制上一周排班成功", data)
}

func (h *Handler) ClearRotaWeek(w http.ResponseWriter, r *http.Request) {
	scope := r.Context().Value(RotaScopeCtx).(*RotaScope)

	var req struct {
		Confirmed   bool `json:"confirmed"`
		ClearStatus bool `json:"clearStatus"`
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

	if err := h.repository.DeleteAssignmentsByScope(scope.WeekID, scope.Team.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 清空状态记录相当于回到从未编辑过的隐式 draft
	if req.ClearStatus {
		if err := h.repository.DeleteWeekStatus(scope.WeekID, scope.Team.ID, scope.Team.DepartmentID); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "清空周排班成功", nil)
}

func (h *Handler) GetRotaAssignedStaff(w http.ResponseWriter, r *http.Request) {
	scope := r.Context().Value(RotaScopeCtx).(*RotaScope)

	records, err := h.repository.GetAssignmentsByScope(scope.WeekID, scope.Team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	grid := rota.NewGrid(rota.KindWeekRota)
	grid.Load(records)

	assignedIDs := make(map[int64]bool)
	for _, id := range grid.AssignedStaffIDs(scope.WeekID, scope.Team.ID) {
		assignedIDs[id] = true
	}

	teamUsers, err := h.repository.GetUsersByTeamID(scope.Team.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assigned := make([]*domain.User, 0)
	idle := make([]*domain.User, 0)
	for _, user := range teamUsers {
		if assignedIDs[user.ID] {
			assigned = append(assigned, user)
		} else {
			idle = append(idle, user)
		}
	}

	data := struct {
		Assigned []*domain.User `json:"assigned"`
		Idle     []*domain.User `json:"idle"`
	}{
		Assigned: assigned,
		Idle:     idle,
	}

	h.successResponse(w, r, "获取本周排班员工成功", data)
}
