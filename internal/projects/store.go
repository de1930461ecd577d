package projects

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasky-suite/workspace-service/internal/domain"
)

// Lookup failures for CRUD operations.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
)

// ProjectInput carries the editable project fields. Status and progress are
// absent on purpose: they are derived and never accepted from callers.
type ProjectInput struct {
	Name        string
	Description string
	Deadline    string
	TeamMembers []string
}

// TaskInput carries the editable task fields.
type TaskInput struct {
	Title       string
	Description string
	Assignee    string
	Status      domain.TaskStatus
}

// Store owns the project collection. All mutations run under the write lock
// so a stale task list can never be used to derive status or progress, and
// every mutation rewrites the snapshot before returning.
type Store struct {
	mu       sync.RWMutex
	projects []domain.Project
	snapshot Snapshot
	logger   *zap.Logger
}

// NewStore loads the project collection from the snapshot, substituting the
// seed dataset when the snapshot is empty or unreadable.
func NewStore(ctx context.Context, snapshot Snapshot, logger *zap.Logger) *Store {
	s := &Store{snapshot: snapshot, logger: logger}
	s.projects = s.load(ctx)
	for i := range s.projects {
		Refresh(&s.projects[i])
	}
	return s
}

func (s *Store) load(ctx context.Context) []domain.Project {
	if s.snapshot == nil {
		return SeedProjects()
	}

	data, err := s.snapshot.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrSnapshotEmpty) {
			s.logger.Warn("unable to load project snapshot; using seed data", zap.Error(err))
		}
		return SeedProjects()
	}

	var loaded []domain.Project
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("project snapshot unreadable; using seed data", zap.Error(err))
		return SeedProjects()
	}
	return loaded
}

// persist rewrites the snapshot. Must be called with the write lock held.
func (s *Store) persist(ctx context.Context) {
	if s.snapshot == nil {
		return
	}
	data, err := json.Marshal(s.projects)
	if err != nil {
		s.logger.Error("unable to encode project snapshot", zap.Error(err))
		return
	}
	if err := s.snapshot.Save(ctx, data); err != nil {
		s.logger.Warn("unable to save project snapshot", zap.Error(err))
	}
}

func (s *Store) indexOf(projectID string) int {
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			return i
		}
	}
	return -1
}

// ListProjects returns the ordered project collection.
func (s *Store) ListProjects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Project, 0, len(s.projects))
	for i := range s.projects {
		out = append(out, *s.projects[i].Clone())
	}
	return out
}

// GetProject returns a project by id.
func (s *Store) GetProject(projectID string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}
	return s.projects[idx].Clone(), nil
}

// CreateProject adds a new project with an empty task list. New projects are
// prepended, matching the reading order of the original client.
func (s *Store) CreateProject(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	project := domain.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Deadline:    input.Deadline,
		TeamMembers: append([]string(nil), input.TeamMembers...),
		Tasks:       []domain.Task{},
	}
	Refresh(&project)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]domain.Project{project}, s.projects...)
	s.persist(ctx)

	return project.Clone(), nil
}

// UpdateProject replaces the editable fields of a project. Derived fields
// are untouched by design; only task mutations can move them.
func (s *Store) UpdateProject(ctx context.Context, projectID string, input ProjectInput) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	project := &s.projects[idx]
	project.Name = input.Name
	project.Description = input.Description
	project.Deadline = input.Deadline
	project.TeamMembers = append([]string(nil), input.TeamMembers...)
	s.persist(ctx)

	return project.Clone(), nil
}

// DeleteProject removes a project and, with it, every task it owns.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return ErrProjectNotFound
	}

	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	s.persist(ctx)
	return nil
}

// AddTask prepends a task to a project and recomputes the derived fields.
func (s *Store) AddTask(ctx context.Context, projectID string, input TaskInput) (*domain.Task, *domain.Project, error) {
	status := input.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Assignee:    input.Assignee,
		Status:      status,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, nil, ErrProjectNotFound
	}

	project := &s.projects[idx]
	project.Tasks = append([]domain.Task{task}, project.Tasks...)
	Refresh(project)
	s.persist(ctx)

	return &task, project.Clone(), nil
}

// UpdateTask replaces the editable fields of a task and recomputes the
// parent's derived fields.
func (s *Store) UpdateTask(ctx context.Context, projectID, taskID string, input TaskInput) (*domain.Task, *domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, task, err := s.findTask(projectID, taskID)
	if err != nil {
		return nil, nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Assignee = input.Assignee
	if input.Status != "" {
		task.Status = input.Status
	}
	Refresh(project)
	s.persist(ctx)

	updated := *task
	return &updated, project.Clone(), nil
}

// SetTaskStatus moves a task to a new status and recomputes the parent's
// derived fields.
func (s *Store) SetTaskStatus(ctx context.Context, projectID, taskID string, status domain.TaskStatus) (*domain.Task, *domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, task, err := s.findTask(projectID, taskID)
	if err != nil {
		return nil, nil, err
	}

	task.Status = status
	Refresh(project)
	s.persist(ctx)

	updated := *task
	return &updated, project.Clone(), nil
}

// DeleteTask removes a task from its parent and recomputes the derived
// fields.
func (s *Store) DeleteTask(ctx context.Context, projectID, taskID string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	project := &s.projects[idx]
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			project.Tasks = append(project.Tasks[:i], project.Tasks[i+1:]...)
			Refresh(project)
			s.persist(ctx)
			return project.Clone(), nil
		}
	}
	return nil, ErrTaskNotFound
}

// findTask resolves a task pointer inside the locked collection. Must be
// called with the write lock held.
func (s *Store) findTask(projectID, taskID string) (*domain.Project, *domain.Task, error) {
	idx := s.indexOf(projectID)
	if idx < 0 {
		return nil, nil, ErrProjectNotFound
	}

	project := &s.projects[idx]
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			return project, &project.Tasks[i], nil
		}
	}
	return nil, nil, ErrTaskNotFound
}
