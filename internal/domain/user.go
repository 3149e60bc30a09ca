package domain

import (
	"time"
)

type Role string

const (
	RoleStaff     Role = "普通员工"
	RoleScheduler Role = "排班管理员"
	RoleAdmin     Role = "系统管理员"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	TeamID       *int64    `json:"teamID"` // 为空表示该员工尚未分配到任何团队
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
