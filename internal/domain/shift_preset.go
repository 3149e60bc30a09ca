package domain

import "time"

type ShiftPreset struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"` // 展示用的时间描述，如 "8:00am - 4:00pm"
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
