package domain

import "time"

type WeekStatusState string

const (
	WeekStatusDraft     WeekStatusState = "draft"
	WeekStatusPublished WeekStatusState = "published"
)

// WeekStatus 记录某个 (周, 团队, 科室) 的排班表生命周期状态。
// 数据库中不存在记录时视为 draft。
type WeekStatus struct {
	ID               int64           `json:"id"`
	WeekID           string          `json:"weekID"`
	TeamID           int64           `json:"teamID"`
	OrgID            int64           `json:"orgID"`
	Status           WeekStatusState `json:"status"`
	LastModified     time.Time       `json:"lastModified"`
	LastModifiedByID int64           `json:"lastModifiedByID"`
	Version          int32           `json:"-"`
}
