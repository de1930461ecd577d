package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tasky-suite/workspace-service/internal/api/dto"
	"github.com/tasky-suite/workspace-service/internal/auth"
	"github.com/tasky-suite/workspace-service/internal/domain"
	"github.com/tasky-suite/workspace-service/internal/service"
	apperrors "github.com/tasky-suite/workspace-service/pkg/util"
)

// ProjectsHandler exposes project and nested task CRUD.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs the handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projectService}
}

// List handles GET /api/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.projects.ListProjects(c.Context())})
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": project})
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project, err := h.projects.CreateProject(c.Context(), actorID(c), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": project})
}

// Update handles PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project, err := h.projects.UpdateProject(c.Context(), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": project})
}

// Delete handles DELETE /api/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	if err := h.projects.DeleteProject(c.Context(), actorID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddTask handles POST /api/projects/:id/tasks.
func (h *ProjectsHandler) AddTask(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, project, err := h.projects.AddTask(c.Context(), actorID(c), c.Params("id"), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"task":    task,
		"project": project,
	}})
}

// UpdateTask handles PUT /api/projects/:id/tasks/:taskId.
func (h *ProjectsHandler) UpdateTask(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, project, err := h.projects.UpdateTask(c.Context(), c.Params("id"), c.Params("taskId"), req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"task":    task,
		"project": project,
	}})
}

// SetTaskStatus handles PATCH /api/projects/:id/tasks/:taskId/status.
func (h *ProjectsHandler) SetTaskStatus(c *fiber.Ctx) error {
	var req dto.TaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, project, err := h.projects.SetTaskStatus(c.Context(), actorID(c), c.Params("id"), c.Params("taskId"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"task":    task,
		"project": project,
	}})
}

// DeleteTask handles DELETE /api/projects/:id/tasks/:taskId.
func (h *ProjectsHandler) DeleteTask(c *fiber.Ctx) error {
	project, err := h.projects.DeleteTask(c.Context(), c.Params("id"), c.Params("taskId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": project})
}

func actorID(c *fiber.Ctx) string {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return identity.UserID
	}
	return ""
}
