package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/repository"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/rota"
)

var baseDepartments = []struct {
	Name        string
	Description string
	Teams       []string
	Wards       []string
}{
	{
		Name:        "内科",
		Description: "内科片区，包含心内、呼吸和消化三个病区",
		Teams:       []string{"内科护理一组", "内科护理二组"},
		Wards:       []string{"心内科病区", "呼吸科病区", "消化科病区"},
	},
	{
		Name:        "外科",
		Description: "外科片区，包含普外和骨科两个病区",
		Teams:       []string{"外科护理组"},
		Wards:       []string{"普外科病区", "骨科病区"},
	},
	{
		Name:        "急诊科",
		Description: "急诊与重症片区",
		Teams:       []string{"急诊护理组"},
		Wards:       []string{"急诊抢救区", "重症监护病区"},
	},
}

var basePresets = []domain.ShiftPreset{
	{Name: "早班", Label: "早", StartTime: "08:00", EndTime: "16:00"},
	{Name: "中班", Label: "中", StartTime: "16:00", EndTime: "00:00"},
	{Name: "夜班", Label: "夜", StartTime: "00:00", EndTime: "08:00"},
	{Name: "行政班", Label: "行", StartTime: "08:30", EndTime: "17:30"},
}

// SeedBaseData 插入科室、团队、病区和班次预设等基础数据。
func SeedBaseData(r *repository.Repository) {
	for _, d := range baseDepartments {
		dept := &domain.Department{
			Name:        d.Name,
			Description: d.Description,
		}
		if err := r.CreateDepartment(dept); err != nil {
			slog.Error("插入科室失败", "name", d.Name, "error", err)
			continue
		}

		for _, teamName := range d.Teams {
			team := &domain.Team{
				DepartmentID: dept.ID,
				Name:         teamName,
				Description:  d.Name + "下属护理团队",
			}
			if err := r.CreateTeam(team); err != nil {
				slog.Error("插入团队失败", "name", teamName, "error", err)
			}
		}

		for _, wardName := range d.Wards {
			ward := &domain.Ward{
				DepartmentID: dept.ID,
				Name:         wardName,
			}
			if err := r.CreateWard(ward); err != nil {
				slog.Error("插入病区失败", "name", wardName, "error", err)
			}
		}
	}

	for _, p := range basePresets {
		preset := p
		if err := r.CreateShiftPreset(&preset); err != nil {
			slog.Error("插入班次预设失败", "name", p.Name, "error", err)
		}
	}

	slog.Info("插入基础数据完成")
}

// SeedExampleWeek 为指定团队生成本周的示例排班：
// 团队成员每人随机排几天班，随机挑选病区和班次预设，最后保存为 draft。
func SeedExampleWeek(r *repository.Repository, teamID int64, actorID int64) {
	team, err := r.GetTeamByID(teamID)
	if err != nil {
		slog.Error("获取团队失败", "team_id", teamID, "error", err)
		return
	}

	users, err := r.GetUsersByTeamID(teamID)
	if err != nil {
		slog.Error("获取团队成员失败", "team_id", teamID, "error", err)
		return
	}
	if len(users) == 0 {
		slog.Error("团队没有成员，无法生成示例排班", "team_id", teamID)
		return
	}

	wards, err := r.GetAllWards()
	if err != nil {
		slog.Error("获取病区列表失败", "error", err)
		return
	}

	presets, err := r.GetAllShiftPresets()
	if err != nil {
		slog.Error("获取班次预设失败", "error", err)
		return
	}
	if len(presets) == 0 {
		slog.Error("没有班次预设，请先插入基础数据")
		return
	}

	weekID := rota.WeekIDOf(time.Now())
	grid := rota.NewGrid(rota.KindWeekRota)

	for _, user := range users {
		workDays := rand.Intn(4) + 3 // 每人每周 3~6 天班
		for day := int32(0); day < 7 && workDays > 0; day++ {
			if rand.Intn(7-int(day)) >= workDays {
				continue
			}
			workDays--

			key := rota.WeekCell(weekID, user.ID, day, teamID)
			a := grid.Add(key)

			patch := rota.AssignmentPatch{}
			if len(wards) > 0 && rand.Intn(4) != 0 {
				wardID := wards[rand.Intn(len(wards))].ID
				patch.WardID = &wardID
			}
			presetID := presets[rand.Intn(len(presets))].ID
			patch.ShiftPresetID = &presetID

			grid.Update(key, a.ID, patch)
		}
	}

	records := grid.Flatten(weekID, teamID)
	if err := r.ReplaceAssignments(weekID, teamID, records); err != nil {
		slog.Error("保存示例排班失败", "error", err)
		return
	}

	book := rota.NewStatusBook()
	key := rota.StatusKey{WeekID: weekID, TeamID: teamID, OrgID: team.DepartmentID}
	ws := book.RecordSave(key, actorID, time.Now())
	if err := r.CreateWeekStatus(ws); err != nil {
		slog.Error("保存周状态失败", "error", err)
		return
	}

	slog.Info("插入示例排班完成", "week_id", weekID, "team_id", teamID, "count", len(records))
}
