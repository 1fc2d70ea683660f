package persistence_test

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/nosql-mis/internal/persistence"
	"github.com/spec-kit/nosql-mis/internal/testutil"
)

func TestCollectionNamesOrder(t *testing.T) {
	want := []string{"employees", "projects", "tasks", "users"}
	got := persistence.CollectionNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d collections, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collection %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestDeclaredIndexes(t *testing.T) {
	type indexInfo struct {
		collection string
		unique     bool
	}
	want := map[string]indexInfo{
		"employees.email_1":      {"employees", true},
		"employees.department_1": {"employees", false},
		"projects.status_1":      {"projects", false},
		"tasks.status_1":         {"tasks", false},
		"users.username_1":       {"users", true},
	}

	seen := 0
	for _, spec := range persistence.Collections {
		for _, idx := range spec.Indexes {
			key := spec.Name + "." + *idx.Options.Name
			info, ok := want[key]
			if !ok {
				t.Errorf("unexpected index %s", key)
				continue
			}
			unique := idx.Options.Unique != nil && *idx.Options.Unique
			if unique != info.unique {
				t.Errorf("%s: expected unique=%v, got %v", key, info.unique, unique)
			}
			seen++
		}
	}
	if seen != len(want) {
		t.Fatalf("expected %d indexes, saw %d", len(want), seen)
	}
}

func TestSchemaCreatesCollectionsAndIndexes(t *testing.T) {
	db := testutil.MongoDatabase(t)
	ctx := context.Background()

	var created []string
	if err := applySchema(ctx, db, func(name string) { created = append(created, name) }); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if strings.Join(created, ",") != strings.Join(persistence.CollectionNames(), ",") {
		t.Fatalf("expected one callback per collection in order, got %v", created)
	}

	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	present := map[string]bool{}
	for _, n := range names {
		present[n] = true
	}
	for _, want := range persistence.CollectionNames() {
		if !present[want] {
			t.Errorf("collection %s missing", want)
		}
	}

	specs, err := db.Collection(persistence.UsersCollection).Indexes().ListSpecifications(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	found := false
	for _, s := range specs {
		if s.Name == "username_1" {
			found = true
			if s.Unique == nil || !*s.Unique {
				t.Error("username_1 should be unique")
			}
		}
	}
	if !found {
		t.Fatal("username_1 index missing")
	}
}

func TestSchemaEnforcesUniqueness(t *testing.T) {
	db := testutil.MongoDatabase(t)
	ctx := context.Background()

	if err := applySchema(ctx, db, nil); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	employees := db.Collection(persistence.EmployeesCollection)
	if _, err := employees.InsertOne(ctx, bson.M{"email": "dup@company.com"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := employees.InsertOne(ctx, bson.M{"email": "dup@company.com"})
	if !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	users := db.Collection(persistence.UsersCollection)
	if _, err := users.InsertOne(ctx, bson.M{"username": "admin"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err = users.InsertOne(ctx, bson.M{"username": "admin"})
	if !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestSchemaIsRepeatable(t *testing.T) {
	db := testutil.MongoDatabase(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := applySchema(ctx, db, nil); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}
}

func applySchema(ctx context.Context, db *mongo.Database, onCreated func(string)) error {
	logger := zap.NewNop()
	if err := persistence.DropCollections(ctx, db, logger); err != nil {
		return err
	}
	if err := persistence.CreateCollections(ctx, db, logger, onCreated); err != nil {
		return err
	}
	return persistence.CreateIndexes(ctx, db, logger)
}
