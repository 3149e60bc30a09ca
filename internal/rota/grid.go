package rota

import (
	"slices"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

type GridKind int

const (
	KindWeekRota GridKind = iota // 周排班视图：行是员工
	KindDailyWorkload            // 日工作量视图：行是病区
)

// Grid 是排班表的内存状态：格子键到有序卡片列表的映射。
// 插入顺序即展示顺序。所有修改操作都会置脏标记，
// 只有加载服务端数据（Load）会清除它。
type Grid struct {
	kind  GridKind
	cells map[CellKey][]*Assignment
	dirty bool
}

func NewGrid(kind GridKind) *Grid {
	return &Grid{
		kind:  kind,
		cells: make(map[CellKey][]*Assignment),
	}
}

func (g *Grid) Dirty() bool {
	return g.dirty
}

// MarkSaved 在一次成功保存后清除脏标记。
func (g *Grid) MarkSaved() {
	g.dirty = false
}

// keyOf 根据视图类型从落库记录推导出格子键。
func (g *Grid) keyOf(rec *domain.RotaAssignment) CellKey {
	if g.kind == KindDailyWorkload {
		return DateCell(rec.WeekID, rec.Location.WardID)
	}
	return WeekCell(rec.WeekID, rec.UserID, rec.DayIndex, rec.TeamID)
}

// cardOf 将落库记录还原成格子中的卡片。
func (g *Grid) cardOf(rec *domain.RotaAssignment) *Assignment {
	a := &Assignment{
		ID:            rec.ID,
		Location:      rec.Location,
		ShiftPresetID: rec.ShiftPresetID,
		CustomShift:   rec.CustomShift,
		CustomStart:   rec.CustomStart,
		CustomEnd:     rec.CustomEnd,
		Notes:         rec.Notes,
	}
	if g.kind == KindDailyWorkload {
		a.AssigneeID = rec.UserID
	}
	return a
}

func (g *Grid) inScope(key CellKey, periodID string, teamID int64) bool {
	if g.kind == KindDailyWorkload {
		return key.PeriodID == periodID
	}
	return key.PeriodID == periodID && key.TeamID == teamID
}

// Load 用服务端取回的记录整体替换网格内容，未保存的本地修改会被丢弃。
// 按 ID 去重时后出现的记录获胜。加载完成后网格视为干净状态。
func (g *Grid) Load(records []*domain.RotaAssignment) {
	g.cells = make(map[CellKey][]*Assignment)
	seen := make(map[string]CellKey)

	for _, rec := range records {
		key := g.keyOf(rec)

		if prevKey, exists := seen[rec.ID]; exists {
			g.removeFromCell(prevKey, rec.ID)
		}

		g.cells[key] = append(g.cells[key], g.cardOf(rec))
		seen[rec.ID] = key
	}

	g.dirty = false
}

// Add 在指定格子末尾追加一张空卡片并返回它。
func (g *Grid) Add(key CellKey) *Assignment {
	a := &Assignment{
		ID:       newAssignmentID(),
		Location: domain.NoLocation(),
	}
	g.cells[key] = append(g.cells[key], a)
	g.dirty = true
	return a
}

// Update 按 ID 对格子中的卡片做部分更新。
// 找不到对应卡片时静默忽略，这是设计行为而不是错误路径。
func (g *Grid) Update(key CellKey, id string, patch AssignmentPatch) bool {
	for _, a := range g.cells[key] {
		if a.ID == id {
			a.apply(patch)
			g.dirty = true
			return true
		}
	}
	return false
}

// Remove 按 ID 删除格子中的卡片，格子变空时一并移除键。
func (g *Grid) Remove(key CellKey, id string) bool {
	if !g.removeFromCell(key, id) {
		return false
	}
	g.dirty = true
	return true
}

func (g *Grid) removeFromCell(key CellKey, id string) bool {
	cards := g.cells[key]
	for i, a := range cards {
		if a.ID == id {
			g.cells[key] = append(cards[:i:i], cards[i+1:]...)
			if len(g.cells[key]) == 0 {
				delete(g.cells, key)
			}
			return true
		}
	}
	return false
}

// Cards 返回格子中卡片列表的副本。
func (g *Grid) Cards(key CellKey) []*Assignment {
	return slices.Clone(g.cells[key])
}

// scopeKeys 返回属于指定范围的所有格子键，按实体和星期排序保证遍历顺序稳定。
func (g *Grid) scopeKeys(periodID string, teamID int64) []CellKey {
	keys := make([]CellKey, 0)
	for key := range g.cells {
		if g.inScope(key, periodID, teamID) {
			keys = append(keys, key)
		}
	}

	slices.SortFunc(keys, func(a, b CellKey) int {
		if a.EntityID != b.EntityID {
			if a.EntityID < b.EntityID {
				return -1
			}
			return 1
		}
		return int(a.DayIndex - b.DayIndex)
	})

	return keys
}

// Flatten 把指定范围内的格子展平成可落库的记录列表。
// 按 ID 去重是保存路径上的最后一道防线；
// 日视图中尚未指派员工的卡片、以及没有归属到任何病区的卡片不会被写入。
func (g *Grid) Flatten(periodID string, teamID int64) []*domain.RotaAssignment {
	records := make([]*domain.RotaAssignment, 0)
	seen := make(map[string]bool)

	for _, key := range g.scopeKeys(periodID, teamID) {
		for _, a := range g.cells[key] {
			if seen[a.ID] {
				continue
			}

			var rec *domain.RotaAssignment
			if g.kind == KindDailyWorkload {
				// 病区 ID 为 0 说明记录没有合法的病区归属（地点缺失或是自定义文本），
				// 落库会产生指向不存在病区的引用，直接跳过
				if a.AssigneeID == 0 || key.EntityID == 0 {
					continue
				}
				rec = &domain.RotaAssignment{
					ID:            a.ID,
					WeekID:        key.PeriodID,
					UserID:        a.AssigneeID,
					Location:      domain.CatalogLocation(key.EntityID),
					ShiftPresetID: a.ShiftPresetID,
					CustomShift:   a.CustomShift,
					CustomStart:   a.CustomStart,
					CustomEnd:     a.CustomEnd,
					Notes:         a.Notes,
				}
			} else {
				promoted, err := Promote(a, key.EntityID, key.TeamID, key.PeriodID, key.DayIndex)
				if err != nil {
					// 键不合法的卡片不具备落库条件，保存时直接跳过
					continue
				}
				rec = promoted
			}

			seen[a.ID] = true
			records = append(records, rec)
		}
	}

	return records
}

// CopyFromPrevious 将上一周期的记录合并进当前网格：
// 每条记录重新生成 ID 并重映射到目标周期；
// 源周期中出现过的格子会被整体覆盖，目标周期独有的格子保持不变。
func (g *Grid) CopyFromPrevious(prev []*domain.RotaAssignment, targetPeriodID string) {
	grouped := make(map[CellKey][]*Assignment)
	for _, rec := range prev {
		key := g.keyOf(rec)
		key.PeriodID = targetPeriodID

		a := g.cardOf(rec)
		a.ID = newAssignmentID()
		grouped[key] = append(grouped[key], a)
	}

	for key, cards := range grouped {
		g.cells[key] = cards
	}

	if len(grouped) > 0 {
		g.dirty = true
	}
}

// ClearScope 删除指定范围内的所有格子。
func (g *Grid) ClearScope(periodID string, teamID int64) int {
	removed := 0
	for key := range g.cells {
		if g.inScope(key, periodID, teamID) {
			removed += len(g.cells[key])
			delete(g.cells, key)
		}
	}

	if removed > 0 {
		g.dirty = true
	}
	return removed
}

// CopyToWeekdays 把一张卡片复制到同一行本周的其余每一天，
// 用于给某个员工设置重复班次。返回新建卡片的数量。
func (g *Grid) CopyToWeekdays(key CellKey, id string) int {
	var source *Assignment
	for _, a := range g.cells[key] {
		if a.ID == id {
			source = a
			break
		}
	}
	if source == nil {
		return 0
	}

	created := 0
	for day := int32(0); day <= 6; day++ {
		if day == key.DayIndex {
			continue
		}

		target := CellKey{
			PeriodID: key.PeriodID,
			EntityID: key.EntityID,
			DayIndex: day,
			TeamID:   key.TeamID,
		}
		cloned := source.clone()
		cloned.ID = newAssignmentID()
		g.cells[target] = append(g.cells[target], cloned)
		created++
	}

	if created > 0 {
		g.dirty = true
	}
	return created
}

// AssignedStaffIDs 返回指定范围内被排到班的员工 ID（去重且升序），
// 用于填充通知收件人候选列表。
func (g *Grid) AssignedStaffIDs(periodID string, teamID int64) []int64 {
	set := make(map[int64]bool)
	for key, cards := range g.cells {
		if !g.inScope(key, periodID, teamID) || len(cards) == 0 {
			continue
		}

		if g.kind == KindDailyWorkload {
			for _, a := range cards {
				if a.AssigneeID != 0 {
					set[a.AssigneeID] = true
				}
			}
		} else {
			set[key.EntityID] = true
		}
	}

	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}
