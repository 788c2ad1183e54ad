package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// TaskService manages project tasks.
type TaskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
}

// NewTaskService constructs the service.
func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

// TaskInput describes create/update payloads.
type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	AssigneeID  *string
}

// CreateTask stores a new task bound to an existing project.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", map[string]any{"id": input.ProjectID})
		}
		return nil, err
	}
	task := &domain.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		AssigneeID:  input.AssigneeID,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusOpen
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask fetches one task.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return nil, err
	}
	return task, nil
}

// ListTasks returns tasks matching the filter.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return s.tasks.ListWithFilter(ctx, filter)
}

// UpdateTask applies mutations.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input TaskInput) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != "" {
		task.Title = input.Title
	}
	task.Description = input.Description
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	task.DueDate = input.DueDate
	task.AssigneeID = input.AssigneeID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("task", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
