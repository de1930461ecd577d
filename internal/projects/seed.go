package projects

import "github.com/tasky-suite/workspace-service/internal/domain"

// SeedProjects returns the fixed dataset used when no snapshot exists or the
// stored blob cannot be decoded.
func SeedProjects() []domain.Project {
	return []domain.Project{
		{
			ID:          "p-1",
			Name:        "Website Revamp",
			Description: "Refresh landing pages and improve performance for mobile users.",
			Deadline:    "2026-03-10",
			TeamMembers: []string{"Aarav", "Mia", "Noah"},
			Tasks: []domain.Task{
				{
					ID:          "t-1",
					Title:       "Build responsive hero section",
					Description: "Implement desktop and mobile variants for the new homepage hero.",
					Assignee:    "Aarav",
					Status:      domain.TaskStatusCompleted,
				},
				{
					ID:          "t-2",
					Title:       "Optimize image pipeline",
					Description: "Convert existing assets and lazy-load non-critical images.",
					Assignee:    "Mia",
					Status:      domain.TaskStatusInProgress,
				},
				{
					ID:          "t-3",
					Title:       "Run Lighthouse audit",
					Description: "Validate performance budgets and accessibility checks.",
					Assignee:    "Noah",
					Status:      domain.TaskStatusTodo,
				},
			},
		},
		{
			ID:          "p-2",
			Name:        "Client Onboarding Flow",
			Description: "Design and implement guided onboarding with progress tracking.",
			Deadline:    "2026-02-28",
			TeamMembers: []string{"Ethan", "Sophia"},
			Tasks: []domain.Task{
				{
					ID:          "t-4",
					Title:       "Wireframe onboarding steps",
					Description: "Produce low-fidelity wireframes for first-time user setup.",
					Assignee:    "Sophia",
					Status:      domain.TaskStatusCompleted,
				},
				{
					ID:          "t-5",
					Title:       "Implement progress tracker",
					Description: "Show step completion and remaining setup tasks.",
					Assignee:    "Ethan",
					Status:      domain.TaskStatusInProgress,
				},
			},
		},
		{
			ID:          "p-3",
			Name:        "Internal Knowledge Base",
			Description: "Set up documentation structure and publish core engineering guides.",
			Deadline:    "2026-04-05",
			TeamMembers: []string{"Liam", "Zoe", "Aiden", "Riya"},
			Tasks: []domain.Task{
				{
					ID:          "t-6",
					Title:       "Create docs templates",
					Description: "Define shared templates for architecture and runbooks.",
					Assignee:    "Liam",
					Status:      domain.TaskStatusTodo,
				},
			},
		},
	}
}
