package dto

import (
	"github.com/tasky-suite/workspace-service/internal/domain"
	"github.com/tasky-suite/workspace-service/internal/projects"
)

// ProjectRequest carries the editable project fields. Status and progress
// are not accepted; they are derived server-side.
type ProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	TeamMembers []string `json:"teamMembers"`
}

// Input converts the request to a store input.
func (r ProjectRequest) Input() projects.ProjectInput {
	return projects.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Deadline:    r.Deadline,
		TeamMembers: r.TeamMembers,
	}
}

// TaskRequest carries the editable task fields.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Status      string `json:"status"`
}

// Input converts the request to a store input.
func (r TaskRequest) Input() projects.TaskInput {
	return projects.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Assignee:    r.Assignee,
		Status:      domain.TaskStatus(r.Status),
	}
}

// TaskStatusRequest moves a task to a new status.
type TaskStatusRequest struct {
	Status string `json:"status"`
}
