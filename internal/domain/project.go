package domain

// TaskStatus enumerates lifecycle states for a task. The string values are
// part of the wire and snapshot format.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "Todo"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ProjectStatus is the derived aggregate status of a project.
type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "Not Started"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// Task belongs exclusively to its parent project; it has no lifecycle of its
// own and is created, edited and removed only through the parent.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Assignee    string     `json:"assignee"`
	Status      TaskStatus `json:"status"`
}

// Project is the aggregate for tracked work. Status and Progress are pure
// functions of Tasks, recomputed after every task mutation; they are never
// writable from the outside.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Deadline    string        `json:"deadline"`
	TeamMembers []string      `json:"teamMembers"`
	Tasks       []Task        `json:"tasks"`
	Status      ProjectStatus `json:"status"`
	Progress    int           `json:"progress"`
}

// Clone returns a deep copy so callers can never reach the store's internal
// slices.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.TeamMembers = append([]string(nil), p.TeamMembers...)
	cp.Tasks = append([]Task(nil), p.Tasks...)
	return &cp
}
