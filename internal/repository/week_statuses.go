package repository

import (
	"context"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (r *Repository) GetWeekStatus(weekID string, teamID int64, orgID int64) (*domain.WeekStatus, error) {
	query := `
		SELECT id, status, last_modified, last_modified_by_id, version
		FROM week_statuses
		WHERE week_id = $1 AND team_id = $2 AND org_id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ws := &domain.WeekStatus{
		WeekID: weekID,
		TeamID: teamID,
		OrgID:  orgID,
	}

	dst := []any{&ws.ID, &ws.Status, &ws.LastModified, &ws.LastModifiedByID, &ws.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, weekID, teamID, orgID).Scan(dst...); err != nil {
		return nil, err
	}

	return ws, nil
}

func (r *Repository) CreateWeekStatus(ws *domain.WeekStatus) error {
	query := `
		INSERT INTO week_statuses (week_id, team_id, org_id, status, last_modified, last_modified_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ws.WeekID, ws.TeamID, ws.OrgID, ws.Status, ws.LastModified, ws.LastModifiedByID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ws.ID, &ws.Version); err != nil {
		return err
	}

	return nil
}

// UpdateWeekStatus 带版本号更新周状态，版本不匹配时返回 sql.ErrNoRows，
// 这样并发的发布或保存不会互相覆盖而不被察觉。
func (r *Repository) UpdateWeekStatus(ws *domain.WeekStatus) error {
	query := `
		UPDATE week_statuses
		SET
			status = $1,
			last_modified = $2,
			last_modified_by_id = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ws.Status, ws.LastModified, ws.LastModifiedByID, ws.ID, ws.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ws.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWeekStatus(weekID string, teamID int64, orgID int64) error {
	query := `
		DELETE FROM week_statuses WHERE week_id = $1 AND team_id = $2 AND org_id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, weekID, teamID, orgID); err != nil {
		return err
	}

	return nil
}
