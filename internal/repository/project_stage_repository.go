package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
)

// ProjectStageRepository encapsulates stage persistence.
type ProjectStageRepository interface {
	Create(ctx context.Context, stage *domain.ProjectStage) error
	Update(ctx context.Context, stage *domain.ProjectStage) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ProjectStage, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectStage, error)
}

type projectStageRepository struct {
	db DB
}

// NewProjectStageRepository instantiates repository.
func NewProjectStageRepository(db DB) ProjectStageRepository {
	return &projectStageRepository{db: db}
}

func (r *projectStageRepository) Create(ctx context.Context, stage *domain.ProjectStage) error {
	const query = `
        INSERT INTO project_stages (project_id, name, description, status, sort_order)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		stage.ProjectID,
		stage.Name,
		stage.Description,
		stage.Status,
		stage.SortOrder,
	).Scan(&stage.ID, &stage.CreatedAt, &stage.UpdatedAt)
}

func (r *projectStageRepository) Update(ctx context.Context, stage *domain.ProjectStage) error {
	const query = `
        UPDATE project_stages SET name=$1, description=$2, status=$3, sort_order=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query,
		stage.Name,
		stage.Description,
		stage.Status,
		stage.SortOrder,
		stage.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectStageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM project_stages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectStageRepository) GetByID(ctx context.Context, id string) (*domain.ProjectStage, error) {
	const query = `
        SELECT id, project_id, name, description, status, sort_order, created_at, updated_at
        FROM project_stages WHERE id=$1`
	var stage domain.ProjectStage
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&stage.ID,
		&stage.ProjectID,
		&stage.Name,
		&stage.Description,
		&stage.Status,
		&stage.SortOrder,
		&stage.CreatedAt,
		&stage.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &stage, nil
}

func (r *projectStageRepository) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectStage, error) {
	const query = `
        SELECT id, project_id, name, description, status, sort_order, created_at, updated_at
        FROM project_stages WHERE project_id=$1 ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProjectStage
	for rows.Next() {
		var stage domain.ProjectStage
		if err := rows.Scan(
			&stage.ID,
			&stage.ProjectID,
			&stage.Name,
			&stage.Description,
			&stage.Status,
			&stage.SortOrder,
			&stage.CreatedAt,
			&stage.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, stage)
	}
	return result, rows.Err()
}
