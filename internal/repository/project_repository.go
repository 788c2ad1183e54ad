package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
)

const projectColumns = `id, number, name, description, status, customer_id, category_id,
               start_date, end_date, budget, created_at, updated_at`

// ProjectFilter captures listing parameters.
type ProjectFilter struct {
	Statuses   []domain.ProjectStatus
	CustomerID *string
	CategoryID *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// ProjectStats summarizes the project collection for the dashboard.
type ProjectStats struct {
	Total      int64
	InProgress int64
	Completed  int64
}

// ProjectRepository encapsulates project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListWithFilter(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
	AddMember(ctx context.Context, member *domain.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID string, role domain.ProjectMemberRole) error
	Stats(ctx context.Context) (ProjectStats, error)
}

type projectRepository struct {
	db DB
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (number, name, description, status, customer_id, category_id, start_date, end_date, budget)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		project.Number,
		project.Name,
		project.Description,
		project.Status,
		project.CustomerID,
		project.CategoryID,
		project.StartDate,
		project.EndDate,
		project.Budget,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, description=$2, status=$3, customer_id=$4, category_id=$5,
            start_date=$6, end_date=$7, budget=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.db.Exec(ctx, query,
		project.Name,
		project.Description,
		project.Status,
		project.CustomerID,
		project.CategoryID,
		project.StartDate,
		project.EndDate,
		project.Budget,
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
	var project domain.Project
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Number,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.CustomerID,
		&project.CategoryID,
		&project.StartDate,
		&project.EndDate,
		&project.Budget,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	members, err := r.ListMembers(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Members = members
	return &project, nil
}

func (r *projectRepository) ListWithFilter(ctx context.Context, filter ProjectFilter) ([]domain.Project, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(number) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		projectColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Number,
			&project.Name,
			&project.Description,
			&project.Status,
			&project.CustomerID,
			&project.CategoryID,
			&project.StartDate,
			&project.EndDate,
			&project.Budget,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		members, err := r.ListMembers(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Members = members
	}
	return result, nil
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	const query = `
        SELECT project_id, user_id, member_role, created_at
        FROM project_members WHERE project_id=$1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.ProjectMember
	for rows.Next() {
		var member domain.ProjectMember
		if err := rows.Scan(&member.ProjectID, &member.UserID, &member.Role, &member.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *projectRepository) AddMember(ctx context.Context, member *domain.ProjectMember) error {
	const query = `
        INSERT INTO project_members (project_id, user_id, member_role)
        VALUES ($1,$2,$3)
        ON CONFLICT (project_id, user_id, member_role) DO NOTHING`
	_, err := r.db.Exec(ctx, query, member.ProjectID, member.UserID, member.Role)
	return err
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID string, role domain.ProjectMemberRole) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM project_members WHERE project_id=$1 AND user_id=$2 AND member_role=$3`,
		projectID, userID, role)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) Stats(ctx context.Context) (ProjectStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status=$1),
               COUNT(*) FILTER (WHERE status=$2)
        FROM projects`
	var stats ProjectStats
	if err := r.db.QueryRow(ctx, query, domain.ProjectStatusInProgress, domain.ProjectStatusCompleted).Scan(
		&stats.Total, &stats.InProgress, &stats.Completed,
	); err != nil {
		return ProjectStats{}, err
	}
	return stats, nil
}
