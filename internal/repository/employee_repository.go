package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/persistence"
)

// EmployeeRepository manages employee persistence.
type EmployeeRepository interface {
	Store[domain.Employee]
}

type employeeRepository struct {
	documentStore[domain.Employee]
}

// NewEmployeeRepository returns a Mongo-backed implementation.
func NewEmployeeRepository(db *mongo.Database) EmployeeRepository {
	return &employeeRepository{newDocumentStore[domain.Employee](db, persistence.EmployeesCollection)}
}
