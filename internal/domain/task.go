package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskPriority ranks tasks.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// TaskStatus tracks work progress.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// Task is a unit of work belonging to a project.
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	ProjectID primitive.ObjectID `bson:"projectId" json:"projectId"`
	Assignee  string             `bson:"assignee" json:"assignee"`
	Priority  TaskPriority       `bson:"priority" json:"priority"`
	Status    TaskStatus         `bson:"status" json:"status"`
	DueDate   string             `bson:"dueDate" json:"dueDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
