package repository

import (
	"context"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (r *Repository) CreateShiftPreset(preset *domain.ShiftPreset) error {
	query := `
		INSERT INTO shift_presets (name, label, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{preset.Name, preset.Label, preset.StartTime, preset.EndTime}
	dst := []any{&preset.ID, &preset.CreatedAt, &preset.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllShiftPresets() ([]*domain.ShiftPreset, error) {
	query := `
		SELECT id, name, label, start_time, end_time, created_at, version FROM shift_presets
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presets := make([]*domain.ShiftPreset, 0)
	for rows.Next() {
		preset := &domain.ShiftPreset{}
		dst := []any{&preset.ID, &preset.Name, &preset.Label, &preset.StartTime, &preset.EndTime, &preset.CreatedAt, &preset.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return presets, nil
}

func (r *Repository) GetShiftPresetByID(id int64) (*domain.ShiftPreset, error) {
	query := `
		SELECT name, label, start_time, end_time, created_at, version FROM shift_presets WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	preset := &domain.ShiftPreset{
		ID: id,
	}

	dst := []any{&preset.Name, &preset.Label, &preset.StartTime, &preset.EndTime, &preset.CreatedAt, &preset.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return preset, nil
}

func (r *Repository) UpdateShiftPreset(preset *domain.ShiftPreset) error {
	query := `
		UPDATE shift_presets
		SET
			name = $1,
			label = $2,
			start_time = $3,
			end_time = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{preset.Name, preset.Label, preset.StartTime, preset.EndTime, preset.ID, preset.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&preset.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShiftPreset(id int64) error {
	query := `
		DELETE FROM shift_presets WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
