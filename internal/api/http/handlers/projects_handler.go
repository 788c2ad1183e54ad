package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/epwerk/field-service/internal/api/dto"
	"github.com/epwerk/field-service/internal/auth"
	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/repository"
	"github.com/epwerk/field-service/internal/service"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// ProjectsHandler manages project endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// ListProjects GET /projects.
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	projects, err := h.service.ListProjects(c.Context(), actor, parseProjectQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProject GET /projects/:id.
func (h *ProjectsHandler) GetProject(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	project, err := h.service.GetProject(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(project)})
}

// CreateProject POST /projects.
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	project, err := h.service.CreateProject(c.Context(), service.ProjectCreateInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      req.Status,
		CustomerID:  req.CustomerID,
		CategoryID:  req.CategoryID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": projectResponse(project)})
}

// UpdateProject PATCH /projects/:id.
func (h *ProjectsHandler) UpdateProject(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	project, err := h.service.UpdateProject(c.Context(), actor, c.Params("id"), service.ProjectUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		CustomerID:  req.CustomerID,
		CategoryID:  req.CategoryID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(project)})
}

// DeleteProject DELETE /projects/:id.
func (h *ProjectsHandler) DeleteProject(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	if err := h.service.DeleteProject(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Stats GET /projects/stats.
func (h *ProjectsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProjectStatsResponse{
		Total:      stats.Total,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
	}})
}

// AddMember POST /projects/:id/members.
func (h *ProjectsHandler) AddMember(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.ProjectMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.Role == "" {
		return apperrors.NewValidationError("user_id and role required", nil)
	}
	if err := h.service.AddMember(c.Context(), actor, c.Params("id"), req.UserID, req.Role); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RemoveMember DELETE /projects/:id/members.
func (h *ProjectsHandler) RemoveMember(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.ProjectMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.Role == "" {
		return apperrors.NewValidationError("user_id and role required", nil)
	}
	if err := h.service.RemoveMember(c.Context(), actor, c.Params("id"), req.UserID, req.Role); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateStage POST /projects/:id/stages.
func (h *ProjectsHandler) CreateStage(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.StageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	stage, err := h.service.CreateStage(c.Context(), actor, c.Params("id"), service.StageCreateInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": stageResponse(stage)})
}

// UpdateStage PATCH /projects/stages/:stageId.
func (h *ProjectsHandler) UpdateStage(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	var req dto.StageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	stage, err := h.service.UpdateStage(c.Context(), actor, c.Params("stageId"), service.StageCreateInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stageResponse(stage)})
}

// DeleteStage DELETE /projects/stages/:stageId.
func (h *ProjectsHandler) DeleteStage(c *fiber.Ctx) error {
	actor := auth.ActorFromContext(c)
	if err := h.service.DeleteStage(c.Context(), actor, c.Params("stageId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseProjectQuery(c *fiber.Ctx) repository.ProjectFilter {
	filter := repository.ProjectFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ProjectStatus(strings.TrimSpace(part)))
		}
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.CustomerID = &customerID
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func projectResponse(project *domain.Project) dto.ProjectResponse {
	members := make([]dto.ProjectMemberResponse, 0, len(project.Members))
	for _, member := range project.Members {
		members = append(members, dto.ProjectMemberResponse{UserID: member.UserID, Role: member.Role})
	}
	stages := make([]dto.StageResponse, 0, len(project.Stages))
	for i := range project.Stages {
		stages = append(stages, stageResponse(&project.Stages[i]))
	}
	return dto.ProjectResponse{
		ID:          project.ID,
		Number:      project.Number,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		CustomerID:  project.CustomerID,
		CategoryID:  project.CategoryID,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		Budget:      project.Budget,
		Members:     members,
		Stages:      stages,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func stageResponse(stage *domain.ProjectStage) dto.StageResponse {
	return dto.StageResponse{
		ID:          stage.ID,
		ProjectID:   stage.ProjectID,
		Name:        stage.Name,
		Description: stage.Description,
		Status:      stage.Status,
		SortOrder:   stage.SortOrder,
	}
}
