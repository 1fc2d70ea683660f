package seed

import (
	"time"

	"github.com/spec-kit/nosql-mis/internal/domain"
)

// Credential is a seeded login account. Digest is the precomputed SHA-256 hex
// of Password; Password is kept only for the summary and the bcrypt scheme.
type Credential struct {
	Username string
	Password string
	Role     domain.UserRole
	Digest   string
}

// Credentials are the accounts inserted into the users collection.
var Credentials = []Credential{
	{
		Username: "admin",
		Password: "admin123",
		Role:     domain.UserRoleAdmin,
		Digest:   "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9",
	},
	{
		Username: "manager",
		Password: "manager123",
		Role:     domain.UserRoleManager,
		Digest:   "866485796cfa8d7c0cf7111640205b83076433547577511d81f8030ae99ecea5",
	},
}

// Employees returns the sample employees stamped with now.
func Employees(now time.Time) []domain.Employee {
	return []domain.Employee{
		{
			Name:       "John Doe",
			Email:      "john@company.com",
			Department: "Engineering",
			Position:   "Senior Developer",
			Salary:     95000,
			CreatedAt:  now,
		},
		{
			Name:       "Jane Smith",
			Email:      "jane@company.com",
			Department: "Marketing",
			Position:   "Marketing Manager",
			Salary:     85000,
			CreatedAt:  now,
		},
		{
			Name:       "Mike Johnson",
			Email:      "mike@company.com",
			Department: "Sales",
			Position:   "Sales Lead",
			Salary:     90000,
			CreatedAt:  now,
		},
	}
}

// Projects returns the sample projects stamped with now.
func Projects(now time.Time) []domain.Project {
	return []domain.Project{
		{
			Name:      "Website Redesign",
			Client:    "Acme Corp",
			Budget:    50000,
			Status:    domain.ProjectStatusInProgress,
			StartDate: "2024-01-15",
			EndDate:   "2024-06-30",
			CreatedAt: now,
		},
		{
			Name:      "Mobile App Development",
			Client:    "TechStart Inc",
			Budget:    120000,
			Status:    domain.ProjectStatusPlanning,
			StartDate: "2024-03-01",
			EndDate:   "2024-12-31",
			CreatedAt: now,
		},
	}
}

// TaskFixture pairs a task with the name of the project it belongs to.
// ProjectID is filled in after the project has been inserted.
type TaskFixture struct {
	ProjectName string
	Task        domain.Task
}

// Tasks returns the sample tasks stamped with now.
func Tasks(now time.Time) []TaskFixture {
	return []TaskFixture{
		{
			ProjectName: "Website Redesign",
			Task: domain.Task{
				Title:     "Design Homepage",
				Assignee:  "John Doe",
				Priority:  domain.TaskPriorityHigh,
				Status:    domain.TaskStatusInProgress,
				DueDate:   "2024-02-15",
				CreatedAt: now,
			},
		},
		{
			ProjectName: "Mobile App Development",
			Task: domain.Task{
				Title:     "Setup CI/CD Pipeline",
				Assignee:  "Jane Smith",
				Priority:  domain.TaskPriorityMedium,
				Status:    domain.TaskStatusNotStarted,
				DueDate:   "2024-03-10",
				CreatedAt: now,
			},
		},
	}
}
