package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

// scanAssignmentRow 把一行数据库记录还原成排班记录，
// 地点按 ward_id / custom_location 两列还原成互斥的变体。
func scanAssignmentRow(rows *sql.Rows) (*domain.RotaAssignment, error) {
	var rec domain.RotaAssignment
	var wardID sql.NullInt64
	var customLocation string
	var presetID sql.NullInt64

	dst := []any{
		&rec.ID,
		&rec.WeekID,
		&rec.TeamID,
		&rec.UserID,
		&rec.DayIndex,
		&wardID,
		&customLocation,
		&presetID,
		&rec.CustomShift,
		&rec.CustomStart,
		&rec.CustomEnd,
		&rec.Notes,
	}
	if err := rows.Scan(dst...); err != nil {
		return nil, err
	}

	switch {
	case wardID.Valid:
		rec.Location = domain.CatalogLocation(wardID.Int64)
	case customLocation != "":
		rec.Location = domain.CustomLocation(customLocation)
	default:
		rec.Location = domain.NoLocation()
	}

	if presetID.Valid {
		rec.ShiftPresetID = presetID.Int64
	}

	return &rec, nil
}

func assignmentParams(rec *domain.RotaAssignment) []any {
	var wardID *int64
	var customLocation string
	switch rec.Location.Kind {
	case domain.LocationCatalog:
		wardID = &rec.Location.WardID
	case domain.LocationCustom:
		customLocation = rec.Location.CustomName
	}

	var presetID *int64
	if rec.ShiftPresetID != 0 {
		presetID = &rec.ShiftPresetID
	}

	return []any{
		rec.ID,
		rec.WeekID,
		rec.TeamID,
		rec.UserID,
		rec.DayIndex,
		wardID,
		customLocation,
		presetID,
		rec.CustomShift,
		rec.CustomStart,
		rec.CustomEnd,
		rec.Notes,
	}
}

func (r *Repository) GetAssignmentsByScope(periodID string, teamID int64) ([]*domain.RotaAssignment, error) {
	query := `
		SELECT id, week_id, team_id, user_id, day_index, ward_id, custom_location,
			shift_preset_id, custom_shift, custom_start, custom_end, notes
		FROM rota_assignments
		WHERE week_id = $1 AND team_id = $2
		ORDER BY user_id, day_index, position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, periodID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.RotaAssignment, 0)
	for rows.Next() {
		rec, err := scanAssignmentRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ReplaceAssignments 在一个事务中整体替换某个范围的排班记录：
// 先删除范围内的旧记录，再按展示顺序插入新记录。
func (r *Repository) ReplaceAssignments(periodID string, teamID int64, records []*domain.RotaAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM rota_assignments WHERE week_id = $1 AND team_id = $2`
	if _, err := tx.ExecContext(ctx, query, periodID, teamID); err != nil {
		return err
	}

	query = `
		INSERT INTO rota_assignments (
			id, week_id, team_id, user_id, day_index, ward_id, custom_location,
			shift_preset_id, custom_shift, custom_start, custom_end, notes, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for i, rec := range records {
		params := append(assignmentParams(rec), i)
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAssignmentsByScope(periodID string, teamID int64) error {
	query := `
		DELETE FROM rota_assignments WHERE week_id = $1 AND team_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, periodID, teamID); err != nil {
		return err
	}

	return nil
}
