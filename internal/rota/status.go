package rota

import (
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

type StatusKey struct {
	WeekID string
	TeamID int64
	OrgID  int64
}

// StatusBook 维护 (周, 团队, 科室) 到周状态的映射。
// 没有记录的周视为 draft；所有状态之间都可以通过显式操作互相转换，没有终态。
type StatusBook struct {
	entries map[StatusKey]*domain.WeekStatus
}

func NewStatusBook() *StatusBook {
	return &StatusBook{
		entries: make(map[StatusKey]*domain.WeekStatus),
	}
}

func (b *StatusBook) Load(statuses []*domain.WeekStatus) {
	for _, ws := range statuses {
		key := StatusKey{WeekID: ws.WeekID, TeamID: ws.TeamID, OrgID: ws.OrgID}
		b.entries[key] = ws
	}
}

// Get 返回指定周的状态记录，不存在时返回 nil。
func (b *StatusBook) Get(key StatusKey) *domain.WeekStatus {
	return b.entries[key]
}

// StateOf 返回指定周的生命周期状态，缺失记录视为 draft。
func (b *StatusBook) StateOf(key StatusKey) domain.WeekStatusState {
	if ws, exists := b.entries[key]; exists {
		return ws.Status
	}
	return domain.WeekStatusDraft
}

func (b *StatusBook) ensure(key StatusKey) *domain.WeekStatus {
	if ws, exists := b.entries[key]; exists {
		return ws
	}

	ws := &domain.WeekStatus{
		WeekID: key.WeekID,
		TeamID: key.TeamID,
		OrgID:  key.OrgID,
		Status: domain.WeekStatusDraft,
	}
	b.entries[key] = ws
	return ws
}

// RecordSave 记录一次保存：首次保存隐式创建 draft 记录，
// 已发布的周保持 published 状态，仅更新修改时间和修改人。
func (b *StatusBook) RecordSave(key StatusKey, actorID int64, now time.Time) *domain.WeekStatus {
	ws := b.ensure(key)
	ws.LastModified = now
	ws.LastModifiedByID = actorID
	return ws
}

// Publish 把指定周置为 published。发布总是伴随一次保存，由调用方负责落库。
func (b *StatusBook) Publish(key StatusKey, actorID int64, now time.Time) *domain.WeekStatus {
	ws := b.ensure(key)
	ws.Status = domain.WeekStatusPublished
	ws.LastModified = now
	ws.LastModifiedByID = actorID
	return ws
}

// Revert 把已发布的周撤回到 draft。
func (b *StatusBook) Revert(key StatusKey, actorID int64, now time.Time) *domain.WeekStatus {
	ws := b.ensure(key)
	ws.Status = domain.WeekStatusDraft
	ws.LastModified = now
	ws.LastModifiedByID = actorID
	return ws
}

// Clear 删除状态记录，相当于回到没有任何历史的隐式 draft。
func (b *StatusBook) Clear(key StatusKey) {
	delete(b.entries, key)
}
