package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/persistence"
)

// TaskRepository manages task persistence.
type TaskRepository interface {
	Store[domain.Task]
	CountOrphans(ctx context.Context) (int64, error)
}

type taskRepository struct {
	documentStore[domain.Task]
}

// NewTaskRepository returns a Mongo-backed implementation.
func NewTaskRepository(db *mongo.Database) TaskRepository {
	return &taskRepository{newDocumentStore[domain.Task](db, persistence.TasksCollection)}
}

// CountOrphans counts tasks whose projectId matches no project.
func (r *taskRepository) CountOrphans(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: persistence.ProjectsCollection},
			{Key: "localField", Value: "projectId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "project"},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "project", Value: bson.D{{Key: "$size", Value: 0}}}}}},
		{{Key: "$count", Value: "orphans"}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Orphans int64 `bson:"orphans"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Orphans, nil
}
