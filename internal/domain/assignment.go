package domain

type LocationKind string

const (
	LocationNone    LocationKind = "none"
	LocationCatalog LocationKind = "catalog"
	LocationCustom  LocationKind = "custom"
)

// Location 表示排班卡片的工作地点。
// 病区目录中的地点和自定义地点互斥，通过构造函数保证不会同时存在。
type Location struct {
	Kind       LocationKind `json:"kind"`
	WardID     int64        `json:"wardID,omitempty"`
	CustomName string       `json:"customName,omitempty"`
}

func NoLocation() Location {
	return Location{Kind: LocationNone}
}

func CatalogLocation(wardID int64) Location {
	return Location{Kind: LocationCatalog, WardID: wardID}
}

func CustomLocation(name string) Location {
	return Location{Kind: LocationCustom, CustomName: name}
}

func (l Location) IsNone() bool {
	return l.Kind == "" || l.Kind == LocationNone
}

// RotaAssignment 是已落库的排班记录：一张卡片绑定到具体的员工、周、星期和团队。
// 日视图的工作量记录复用该结构，此时 WeekID 存放日期编号，TeamID 和 DayIndex 为 0。
type RotaAssignment struct {
	ID            string   `json:"id"`
	WeekID        string   `json:"weekID"`
	TeamID        int64    `json:"teamID"`
	UserID        int64    `json:"userID"`
	DayIndex      int32    `json:"dayIndex"`
	Location      Location `json:"location"`
	ShiftPresetID int64    `json:"shiftPresetID"` // 0 表示未选择预设班次
	CustomShift   bool     `json:"customShift"`
	CustomStart   string   `json:"customStart"`
	CustomEnd     string   `json:"customEnd"`
	Notes         string   `json:"notes"`
}
