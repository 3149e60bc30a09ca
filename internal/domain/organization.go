package domain

import "time"

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

type Team struct {
	ID           int64     `json:"id"`
	DepartmentID int64     `json:"departmentID"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

type Ward struct {
	ID           int64     `json:"id"`
	DepartmentID int64     `json:"departmentID"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
