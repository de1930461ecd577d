package events

import (
	"time"

	"github.com/tasky-suite/workspace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventProjectCreated    EventType = "project_created"
	EventProjectDeleted    EventType = "project_deleted"
	EventTaskAdded         EventType = "task_added"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventProjectCompleted  EventType = "project_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	Role      domain.Role `json:"role"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Deadline  string `json:"deadline"`
}

// ProjectDeletedPayload payload.
type ProjectDeletedPayload struct {
	ProjectID string `json:"project_id"`
}

// TaskAddedPayload payload.
type TaskAddedPayload struct {
	ProjectID string `json:"project_id"`
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Assignee  string `json:"assignee,omitempty"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	ProjectID string            `json:"project_id"`
	TaskID    string            `json:"task_id"`
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// ProjectCompletedPayload payload.
type ProjectCompletedPayload struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Progress  int    `json:"progress"`
}
