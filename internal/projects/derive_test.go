package projects

import (
	"testing"

	"github.com/tasky-suite/workspace-service/internal/domain"
)

func tasksWith(statuses ...domain.TaskStatus) []domain.Task {
	tasks := make([]domain.Task, 0, len(statuses))
	for i, status := range statuses {
		tasks = append(tasks, domain.Task{
			ID:     string(rune('a' + i)),
			Title:  "task",
			Status: status,
		})
	}
	return tasks
}

func TestDeriveStatus(t *testing.T) {
	todo := domain.TaskStatusTodo
	inProgress := domain.TaskStatusInProgress
	completed := domain.TaskStatusCompleted

	cases := []struct {
		name     string
		statuses []domain.TaskStatus
		want     domain.ProjectStatus
	}{
		{"empty list", nil, domain.ProjectStatusNotStarted},
		{"all todo", []domain.TaskStatus{todo, todo, todo}, domain.ProjectStatusNotStarted},
		{"one in progress", []domain.TaskStatus{todo, inProgress}, domain.ProjectStatusInProgress},
		{"one completed among todo", []domain.TaskStatus{completed, todo}, domain.ProjectStatusInProgress},
		{"mixed", []domain.TaskStatus{completed, inProgress, todo}, domain.ProjectStatusInProgress},
		{"single completed", []domain.TaskStatus{completed}, domain.ProjectStatusCompleted},
		{"all completed", []domain.TaskStatus{completed, completed, completed}, domain.ProjectStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tasksWith(tc.statuses...))
			if got != tc.want {
				t.Errorf("DeriveStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDeriveProgress(t *testing.T) {
	todo := domain.TaskStatusTodo
	completed := domain.TaskStatusCompleted

	cases := []struct {
		name     string
		statuses []domain.TaskStatus
		want     int
	}{
		{"empty list", nil, 0},
		{"none completed", []domain.TaskStatus{todo, todo}, 0},
		{"half completed", []domain.TaskStatus{completed, todo}, 50},
		{"one of three", []domain.TaskStatus{completed, todo, todo}, 33},
		{"two of three", []domain.TaskStatus{completed, completed, todo}, 67},
		{"rounds half up", []domain.TaskStatus{completed, todo, todo, todo, todo, todo, todo, todo}, 13},
		{"all completed", []domain.TaskStatus{completed, completed}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveProgress(tasksWith(tc.statuses...))
			if got != tc.want {
				t.Errorf("DeriveProgress = %d, want %d", got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("DeriveProgress = %d, outside [0,100]", got)
			}
		})
	}
}

func TestDeriveIsIdempotentAndPure(t *testing.T) {
	tasks := tasksWith(domain.TaskStatusCompleted, domain.TaskStatusInProgress, domain.TaskStatusTodo)
	before := append([]domain.Task(nil), tasks...)

	status1, progress1 := DeriveStatus(tasks), DeriveProgress(tasks)
	status2, progress2 := DeriveStatus(tasks), DeriveProgress(tasks)

	if status1 != status2 || progress1 != progress2 {
		t.Errorf("derive not idempotent: (%q,%d) then (%q,%d)", status1, progress1, status2, progress2)
	}
	for i := range tasks {
		if tasks[i] != before[i] {
			t.Errorf("derive mutated input at index %d: %+v", i, tasks[i])
		}
	}
}

func TestRefresh(t *testing.T) {
	project := &domain.Project{
		Tasks: tasksWith(domain.TaskStatusCompleted, domain.TaskStatusCompleted),
		// Stale values that Refresh must overwrite.
		Status:   domain.ProjectStatusNotStarted,
		Progress: 10,
	}

	Refresh(project)

	if project.Status != domain.ProjectStatusCompleted {
		t.Errorf("Status = %q, want %q", project.Status, domain.ProjectStatusCompleted)
	}
	if project.Progress != 100 {
		t.Errorf("Progress = %d, want 100", project.Progress)
	}
}
