package repository

import (
	"context"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (r *Repository) CreateWard(ward *domain.Ward) error {
	query := `
		INSERT INTO wards (department_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&ward.ID, &ward.CreatedAt, &ward.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, ward.DepartmentID, ward.Name).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllWards() ([]*domain.Ward, error) {
	query := `
		SELECT id, department_id, name, created_at, version FROM wards
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wards := make([]*domain.Ward, 0)
	for rows.Next() {
		ward := &domain.Ward{}
		if err := rows.Scan(&ward.ID, &ward.DepartmentID, &ward.Name, &ward.CreatedAt, &ward.Version); err != nil {
			return nil, err
		}
		wards = append(wards, ward)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return wards, nil
}

func (r *Repository) GetWardByID(id int64) (*domain.Ward, error) {
	query := `
		SELECT department_id, name, created_at, version FROM wards WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ward := &domain.Ward{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&ward.DepartmentID, &ward.Name, &ward.CreatedAt, &ward.Version); err != nil {
		return nil, err
	}

	return ward, nil
}

func (r *Repository) UpdateWard(ward *domain.Ward) error {
	query := `
		UPDATE wards
		SET
			name = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ward.Name, ward.ID, ward.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ward.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWard(id int64) error {
	query := `
		DELETE FROM wards WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
