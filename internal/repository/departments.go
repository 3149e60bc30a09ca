package repository

import (
	"context"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (r *Repository) CreateDepartment(dept *domain.Department) error {
	query := `
		INSERT INTO departments (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dst := []any{&dept.ID, &dept.CreatedAt, &dept.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, dept.Name, dept.Description).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllDepartments() ([]*domain.Department, error) {
	query := `
		SELECT id, name, description, created_at, version FROM departments
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	depts := make([]*domain.Department, 0)
	for rows.Next() {
		dept := &domain.Department{}
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Description, &dept.CreatedAt, &dept.Version); err != nil {
			return nil, err
		}
		depts = append(depts, dept)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return depts, nil
}

func (r *Repository) GetDepartmentByID(id int64) (*domain.Department, error) {
	query := `
		SELECT name, description, created_at, version FROM departments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	dept := &domain.Department{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&dept.Name, &dept.Description, &dept.CreatedAt, &dept.Version); err != nil {
		return nil, err
	}

	return dept, nil
}

func (r *Repository) UpdateDepartment(dept *domain.Department) error {
	query := `
		UPDATE departments
		SET
			name = $1,
			description = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{dept.Name, dept.Description, dept.ID, dept.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&dept.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteDepartment(id int64) error {
	query := `
		DELETE FROM departments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
