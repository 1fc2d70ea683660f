package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is a staff record kept in the employees collection.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Department string             `bson:"department" json:"department"`
	Position   string             `bson:"position" json:"position"`
	Salary     int64              `bson:"salary" json:"salary"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
