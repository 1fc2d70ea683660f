package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	EmployeesCollection = "employees"
	ProjectsCollection  = "projects"
	TasksCollection     = "tasks"
	UsersCollection     = "users"
)

// CollectionSpec describes one collection and the indexes it carries.
type CollectionSpec struct {
	Name    string
	Indexes []mongo.IndexModel
}

// Collections lists the schema in creation order.
var Collections = []CollectionSpec{
	{
		Name: EmployeesCollection,
		Indexes: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_1").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "department", Value: 1}},
				Options: options.Index().SetName("department_1"),
			},
		},
	},
	{
		Name: ProjectsCollection,
		Indexes: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("status_1"),
			},
		},
	},
	{
		Name: TasksCollection,
		Indexes: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("status_1"),
			},
		},
	},
	{
		Name: UsersCollection,
		Indexes: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("username_1").SetUnique(true),
			},
		},
	},
}

// CollectionNames returns the collection names in schema order.
func CollectionNames() []string {
	names := make([]string, 0, len(Collections))
	for _, spec := range Collections {
		names = append(names, spec.Name)
	}
	return names
}

// DropCollections drops every schema collection. Missing collections are not an error.
func DropCollections(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for _, spec := range Collections {
		if err := db.Collection(spec.Name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", spec.Name, err)
		}
		logger.Debug("dropped collection", zap.String("collection", spec.Name))
	}
	return nil
}

// CreateCollections creates every schema collection explicitly. onCreated,
// when set, runs right after each collection exists.
func CreateCollections(ctx context.Context, db *mongo.Database, logger *zap.Logger, onCreated func(name string)) error {
	for _, spec := range Collections {
		if err := db.CreateCollection(ctx, spec.Name); err != nil {
			return fmt.Errorf("create %s: %w", spec.Name, err)
		}
		logger.Info("created collection", zap.String("collection", spec.Name))
		if onCreated != nil {
			onCreated(spec.Name)
		}
	}
	return nil
}

// CreateIndexes builds the declared indexes. Collections must already exist.
func CreateIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	total := 0
	for _, spec := range Collections {
		if len(spec.Indexes) == 0 {
			continue
		}
		names, err := db.Collection(spec.Name).Indexes().CreateMany(ctx, spec.Indexes)
		if err != nil {
			return fmt.Errorf("index %s: %w", spec.Name, err)
		}
		total += len(names)
		logger.Info("created indexes", zap.String("collection", spec.Name), zap.Strings("indexes", names))
	}
	logger.Info("indexes applied", zap.Int("count", total))
	return nil
}
