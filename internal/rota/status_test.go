package rota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func TestStatusBookImplicitDraft(t *testing.T) {
	b := NewStatusBook()
	key := StatusKey{WeekID: "2025-W9", TeamID: 7, OrgID: 1}

	assert.Equal(t, domain.WeekStatusDraft, b.StateOf(key))
	assert.Nil(t, b.Get(key))
}

func TestStatusBookRecordSave(t *testing.T) {
	b := NewStatusBook()
	key := StatusKey{WeekID: "2025-W9", TeamID: 7, OrgID: 1}
	now := time.Now()

	ws := b.RecordSave(key, 42, now)
	require.NotNil(t, ws)
	assert.Equal(t, domain.WeekStatusDraft, ws.Status)
	assert.Equal(t, int64(42), ws.LastModifiedByID)
	assert.Equal(t, now, ws.LastModified)

	// 发布后的保存不改变状态，只刷新修改信息
	b.Publish(key, 42, now)
	later := now.Add(time.Hour)
	ws = b.RecordSave(key, 43, later)
	assert.Equal(t, domain.WeekStatusPublished, ws.Status)
	assert.Equal(t, int64(43), ws.LastModifiedByID)
	assert.Equal(t, later, ws.LastModified)
}

func TestStatusBookPublishAndRevert(t *testing.T) {
	b := NewStatusBook()
	key := StatusKey{WeekID: "2025-W9", TeamID: 7, OrgID: 1}
	now := time.Now()

	ws := b.Publish(key, 42, now)
	assert.Equal(t, domain.WeekStatusPublished, ws.Status)
	assert.Equal(t, domain.WeekStatusPublished, b.StateOf(key))

	ws = b.Revert(key, 43, now.Add(time.Minute))
	assert.Equal(t, domain.WeekStatusDraft, ws.Status)
	assert.Equal(t, int64(43), ws.LastModifiedByID)

	// 撤回后可以再次发布，没有终态
	ws = b.Publish(key, 42, now.Add(2*time.Minute))
	assert.Equal(t, domain.WeekStatusPublished, ws.Status)
}

func TestStatusBookLoad(t *testing.T) {
	b := NewStatusBook()
	b.Load([]*domain.WeekStatus{
		{ID: 1, WeekID: "2025-W9", TeamID: 7, OrgID: 1, Status: domain.WeekStatusPublished},
		{ID: 2, WeekID: "2025-W10", TeamID: 7, OrgID: 1, Status: domain.WeekStatusDraft},
	})

	assert.Equal(t, domain.WeekStatusPublished, b.StateOf(StatusKey{WeekID: "2025-W9", TeamID: 7, OrgID: 1}))
	assert.Equal(t, domain.WeekStatusDraft, b.StateOf(StatusKey{WeekID: "2025-W10", TeamID: 7, OrgID: 1}))

	// 加载的记录保留数据库 ID，后续落库走更新而不是插入
	ws := b.Get(StatusKey{WeekID: "2025-W9", TeamID: 7, OrgID: 1})
	require.NotNil(t, ws)
	assert.Equal(t, int64(1), ws.ID)
}

func TestStatusBookClear(t *testing.T) {
	b := NewStatusBook()
	key := StatusKey{WeekID: "2025-W9", TeamID: 7, OrgID: 1}

	b.Publish(key, 42, time.Now())
	b.Clear(key)

	assert.Nil(t, b.Get(key))
	assert.Equal(t, domain.WeekStatusDraft, b.StateOf(key))
}
