package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/persistence"
)

// ProjectRepository manages project persistence.
type ProjectRepository interface {
	Store[domain.Project]
	GetByName(ctx context.Context, name string) (*domain.Project, error)
}

type projectRepository struct {
	documentStore[domain.Project]
}

// NewProjectRepository returns a Mongo-backed implementation.
func NewProjectRepository(db *mongo.Database) ProjectRepository {
	return &projectRepository{newDocumentStore[domain.Project](db, persistence.ProjectsCollection)}
}

// GetByName returns the first project with the given name.
func (r *projectRepository) GetByName(ctx context.Context, name string) (*domain.Project, error) {
	return r.findOne(ctx, "project", bson.M{"name": name})
}
