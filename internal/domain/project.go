package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus is the free-form lifecycle label of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// Project is a client engagement. Tasks reference it by ID.
type Project struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Client    string             `bson:"client" json:"client"`
	Budget    int64              `bson:"budget" json:"budget"`
	Status    ProjectStatus      `bson:"status" json:"status"`
	StartDate string             `bson:"startDate" json:"startDate"`
	EndDate   string             `bson:"endDate" json:"endDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
