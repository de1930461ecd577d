package service

import (
	"context"
	"errors"

	"github.com/tasky-suite/workspace-service/internal/domain"
	"github.com/tasky-suite/workspace-service/internal/events"
	"github.com/tasky-suite/workspace-service/internal/projects"
	apperrors "github.com/tasky-suite/workspace-service/pkg/util"
)

// ProjectService fronts the project store for the HTTP layer: it validates
// input, translates store errors to the response taxonomy and emits domain
// events after successful mutations.
type ProjectService struct {
	store      *projects.Store
	dispatcher events.Dispatcher
}

// NewProjectService constructs the service.
func NewProjectService(store *projects.Store, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{store: store, dispatcher: dispatcher}
}

// ListProjects returns all projects in their stored order.
func (s *ProjectService) ListProjects(_ context.Context) []domain.Project {
	return s.store.ListProjects()
}

// GetProject returns one project.
func (s *ProjectService) GetProject(_ context.Context, projectID string) (*domain.Project, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return project, nil
}

// CreateProject creates an empty project.
func (s *ProjectService) CreateProject(ctx context.Context, actorID string, input projects.ProjectInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("project name required", nil)
	}

	project, err := s.store.CreateProject(ctx, input)
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.publish(ctx, events.EventProjectCreated, actorID, events.ProjectCreatedPayload{
		ProjectID: project.ID,
		Name:      project.Name,
		Deadline:  project.Deadline,
	})
	return project, nil
}

// UpdateProject replaces the editable project fields.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, input projects.ProjectInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("project name required", nil)
	}

	project, err := s.store.UpdateProject(ctx, projectID, input)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return project, nil
}

// DeleteProject removes a project and all of its tasks.
func (s *ProjectService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return mapStoreError(err)
	}

	s.publish(ctx, events.EventProjectDeleted, actorID, events.ProjectDeletedPayload{
		ProjectID: projectID,
	})
	return nil
}

// AddTask adds a task to a project.
func (s *ProjectService) AddTask(ctx context.Context, actorID, projectID string, input projects.TaskInput) (*domain.Task, *domain.Project, error) {
	if input.Title == "" {
		return nil, nil, apperrors.NewValidationError("task title required", nil)
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, nil, apperrors.NewValidationError("unknown task status", map[string]any{"status": input.Status})
	}

	task, project, err := s.store.AddTask(ctx, projectID, input)
	if err != nil {
		return nil, nil, mapStoreError(err)
	}

	s.publish(ctx, events.EventTaskAdded, actorID, events.TaskAddedPayload{
		ProjectID: project.ID,
		TaskID:    task.ID,
		Title:     task.Title,
		Assignee:  task.Assignee,
	})
	return task, project, nil
}

// UpdateTask replaces the editable task fields.
func (s *ProjectService) UpdateTask(ctx context.Context, projectID, taskID string, input projects.TaskInput) (*domain.Task, *domain.Project, error) {
	if input.Title == "" {
		return nil, nil, apperrors.NewValidationError("task title required", nil)
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, nil, apperrors.NewValidationError("unknown task status", map[string]any{"status": input.Status})
	}

	task, project, err := s.store.UpdateTask(ctx, projectID, taskID, input)
	if err != nil {
		return nil, nil, mapStoreError(err)
	}
	return task, project, nil
}

// SetTaskStatus moves a task through its lifecycle and reports project
// completion when the transition finishes the last open task.
func (s *ProjectService) SetTaskStatus(ctx context.Context, actorID, projectID, taskID string, status domain.TaskStatus) (*domain.Task, *domain.Project, error) {
	if !status.Valid() {
		return nil, nil, apperrors.NewValidationError("unknown task status", map[string]any{"status": status})
	}

	before, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, nil, mapStoreError(err)
	}

	var oldStatus domain.TaskStatus
	for _, task := range before.Tasks {
		if task.ID == taskID {
			oldStatus = task.Status
		}
	}

	task, project, err := s.store.SetTaskStatus(ctx, projectID, taskID, status)
	if err != nil {
		return nil, nil, mapStoreError(err)
	}

	s.publish(ctx, events.EventTaskStatusChanged, actorID, events.TaskStatusChangedPayload{
		ProjectID: project.ID,
		TaskID:    task.ID,
		OldStatus: oldStatus,
		NewStatus: task.Status,
	})
	if before.Status != domain.ProjectStatusCompleted && project.Status == domain.ProjectStatusCompleted {
		s.publish(ctx, events.EventProjectCompleted, actorID, events.ProjectCompletedPayload{
			ProjectID: project.ID,
			Name:      project.Name,
			Progress:  project.Progress,
		})
	}
	return task, project, nil
}

// DeleteTask removes a task from its project.
func (s *ProjectService) DeleteTask(ctx context.Context, projectID, taskID string) (*domain.Project, error) {
	project, err := s.store.DeleteTask(ctx, projectID, taskID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return project, nil
}

func (s *ProjectService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, actorID, payload))
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, projects.ErrProjectNotFound):
		return apperrors.NewNotFound("project", nil)
	case errors.Is(err, projects.ErrTaskNotFound):
		return apperrors.NewNotFound("task", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
