package repository

import (
	"context"
	"time"

	"github.com/sysu-hospital-dev/hospital-rota/backend/internal/domain"
)

func (r *Repository) CreateTeam(team *domain.Team) error {
	query := `
		INSERT INTO teams (department_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{team.DepartmentID, team.Name, team.Description}
	dst := []any{&team.ID, &team.CreatedAt, &team.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllTeams() ([]*domain.Team, error) {
	query := `
		SELECT id, department_id, name, description, created_at, version FROM teams
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team := &domain.Team{}
		if err := rows.Scan(&team.ID, &team.DepartmentID, &team.Name, &team.Description, &team.CreatedAt, &team.Version); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *Repository) GetTeamByID(id int64) (*domain.Team, error) {
	query := `
		SELECT department_id, name, description, created_at, version FROM teams WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	team := &domain.Team{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&team.DepartmentID, &team.Name, &team.Description, &team.CreatedAt, &team.Version); err != nil {
		return nil, err
	}

	return team, nil
}

func (r *Repository) UpdateTeam(team *domain.Team) error {
	// 不允许更新团队所属的科室，否则周状态中的科室关联会混乱
	query := `
		UPDATE teams
		SET
			name = $1,
			description = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{team.Name, team.Description, team.ID, team.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&team.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTeam(id int64) error {
	query := `
		DELETE FROM teams WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
