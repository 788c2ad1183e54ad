package service

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// CategoryService manages categories and their stage templates.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput describes create/update payloads. StageTemplate is the raw
// JSON template object, validated for well-formedness on write.
type CategoryInput struct {
	Name          string
	Description   string
	StageTemplate json.RawMessage
}

// CreateCategory stores a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if err := validateTemplate(input.StageTemplate); err != nil {
		return nil, err
	}
	category := &domain.Category{
		Name:          input.Name,
		Description:   input.Description,
		StageTemplate: input.StageTemplate,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapStorageError("category", err)
	}
	return category, nil
}

// GetCategory fetches one category.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, err
	}
	return category, nil
}

// ListCategories returns all categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// UpdateCategory overwrites category fields.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		category.Name = input.Name
	}
	category.Description = input.Description
	if input.StageTemplate != nil {
		if err := validateTemplate(input.StageTemplate); err != nil {
			return nil, err
		}
		category.StageTemplate = input.StageTemplate
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapStorageError("category", err)
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func validateTemplate(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var tmpl stageTemplate
	if err := json.Unmarshal(raw, &tmpl); err != nil {
		return apperrors.NewValidationError("stage template is not valid JSON", nil)
	}
	return nil
}
