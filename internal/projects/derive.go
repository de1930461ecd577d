package projects

import (
	"math"

	"github.com/tasky-suite/workspace-service/internal/domain"
)

// DeriveProgress computes the completion percentage of a task list:
// 0 for an empty list, otherwise round-half-up of 100*completed/total.
// The result is always within [0, 100].
func DeriveProgress(tasks []domain.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, task := range tasks {
		if task.Status == domain.TaskStatusCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}

// DeriveStatus computes the aggregate status of a task list:
// empty is Not Started, all completed is Completed, any completed or
// in-progress work is In Progress, and a list of only Todo tasks is
// Not Started.
func DeriveStatus(tasks []domain.Task) domain.ProjectStatus {
	if len(tasks) == 0 {
		return domain.ProjectStatusNotStarted
	}

	completed := 0
	inProgress := false
	for _, task := range tasks {
		switch task.Status {
		case domain.TaskStatusCompleted:
			completed++
		case domain.TaskStatusInProgress:
			inProgress = true
		}
	}

	if completed == len(tasks) {
		return domain.ProjectStatusCompleted
	}
	if completed > 0 || inProgress {
		return domain.ProjectStatusInProgress
	}
	return domain.ProjectStatusNotStarted
}

// Refresh recomputes both derived fields in place. It must run after every
// task mutation before the project is readable again.
func Refresh(project *domain.Project) {
	project.Status = DeriveStatus(project.Tasks)
	project.Progress = DeriveProgress(project.Tasks)
}
