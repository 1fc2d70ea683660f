package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/events"
	"github.com/spec-kit/nosql-mis/internal/worker"
	"github.com/spec-kit/nosql-mis/pkg/util/errorutil"
)

type employeeStore struct {
	memStore[domain.Employee]
}

type taskStore struct {
	memStore[domain.Task]
}

func (taskStore) CountOrphans(context.Context) (int64, error) { return 0, nil }

func TestListReadsThroughCache(t *testing.T) {
	store := &employeeStore{}
	store.docs = []domain.Employee{{ID: primitive.NewObjectID(), Name: "John Doe", Email: "john@company.com"}}
	cache := newMemCache()
	svc := NewEmployeeService(store, RecordDependencies{Cache: cache})
	ctx := context.Background()

	items, fromCache, err := svc.List(ctx)
	if err != nil || fromCache || len(items) != 1 {
		t.Fatalf("first list: items=%d fromCache=%v err=%v", len(items), fromCache, err)
	}

	items, fromCache, err = svc.List(ctx)
	if err != nil || !fromCache {
		t.Fatalf("second list should hit cache: fromCache=%v err=%v", fromCache, err)
	}
	if items[0].ID != store.docs[0].ID || items[0].Email != "john@company.com" {
		t.Fatalf("cached item mismatch %+v", items[0])
	}
	if store.lists != 1 {
		t.Fatalf("expected one store read, got %d", store.lists)
	}
}

func TestListFallsBackOnCacheError(t *testing.T) {
	store := &employeeStore{}
	cache := newMemCache()
	cache.getErr = errBoom
	svc := NewEmployeeService(store, RecordDependencies{Cache: cache})

	items, fromCache, err := svc.List(context.Background())
	if err != nil || fromCache {
		t.Fatalf("expected store read, got fromCache=%v err=%v", fromCache, err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v", items)
	}
}

func TestWritesInvalidateCache(t *testing.T) {
	store := &employeeStore{}
	cache := newMemCache()
	d := events.NewInMemoryDispatcher()
	worker.StartCacheInvalidator(d, cache, zap.NewNop())
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	svc := NewEmployeeService(store, RecordDependencies{Cache: cache, Dispatcher: d, Now: func() time.Time { return now }})
	ctx := context.Background()

	if _, _, err := svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, ok := cache.entries["employees"]; !ok {
		t.Fatal("expected listing to be cached")
	}

	emp := &domain.Employee{Name: "Ann Lee", Email: "ann@company.com"}
	if _, err := svc.Create(ctx, "admin", emp); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !emp.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt %s, got %s", now, emp.CreatedAt)
	}
	if _, ok := cache.entries["employees"]; ok {
		t.Fatal("expected cache invalidated after create")
	}

	if _, _, err := svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.Delete(ctx, "admin", primitive.NewObjectID().Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := cache.entries["employees"]; ok {
		t.Fatal("expected cache invalidated after delete")
	}
}

func TestCreateValidatesAndMapsConflicts(t *testing.T) {
	store := &employeeStore{}
	svc := NewEmployeeService(store, RecordDependencies{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "admin", &domain.Employee{Name: "No Email"})
	if de := errorutil.ToDomainError(err); de == nil || de.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected validation error, got %v", err)
	}

	store.createEr = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	_, err = svc.Create(ctx, "admin", &domain.Employee{Name: "Dup", Email: "john@company.com"})
	if de := errorutil.ToDomainError(err); de == nil || de.Code != "CONFLICT" {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateNormalizesFields(t *testing.T) {
	store := &taskStore{}
	svc := NewTaskService(store, RecordDependencies{})
	ctx := context.Background()
	projectID := primitive.NewObjectID()

	modified, err := svc.Update(ctx, "admin", primitive.NewObjectID().Hex(), map[string]any{
		"_id":       "ignored",
		"status":    "Done",
		"projectId": projectID.Hex(),
	})
	if err != nil || modified != 1 {
		t.Fatalf("update: modified=%d err=%v", modified, err)
	}
	set := store.updates[0]
	if _, ok := set["_id"]; ok {
		t.Fatal("_id must not be updated")
	}
	if set["projectId"] != projectID {
		t.Fatalf("expected projectId converted to ObjectID, got %#v", set["projectId"])
	}

	if _, err := svc.Update(ctx, "admin", primitive.NewObjectID().Hex(), map[string]any{"projectId": "nope"}); err == nil {
		t.Fatal("expected invalid projectId to be rejected")
	}
	if _, err := svc.Update(ctx, "admin", primitive.NewObjectID().Hex(), map[string]any{"_id": "x"}); err == nil {
		t.Fatal("expected empty update to be rejected")
	}
}

func TestInvalidIDRejected(t *testing.T) {
	svc := NewProjectService(&projectStore{}, RecordDependencies{})

	_, err := svc.Delete(context.Background(), "admin", "not-an-id")
	de := errorutil.ToDomainError(err)
	if de == nil || de.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type projectStore struct {
	memStore[domain.Project]
}

func (p *projectStore) GetByName(_ context.Context, name string) (*domain.Project, error) {
	for i := range p.docs {
		if p.docs[i].Name == name {
			return &p.docs[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func TestUpdateRejectsMistypedFieldsSoListingKeepsDecoding(t *testing.T) {
	id := primitive.NewObjectID()
	store := &employeeStore{}
	store.docs = []domain.Employee{{ID: id, Name: "John Doe", Email: "john@company.com", Salary: 95000}}
	svc := NewEmployeeService(store, RecordDependencies{})
	ctx := context.Background()

	rejected := []map[string]any{
		{"salary": "high"},
		{"salary": 95000.5},
		{"createdAt": "2024-01-01"},
		{"name": 42.0},
		{"$set": map[string]any{"salary": 1.0}},
		{"salary.amount": 1.0},
	}
	for _, fields := range rejected {
		_, err := svc.Update(ctx, "admin", id.Hex(), fields)
		if de := errorutil.ToDomainError(err); de == nil || de.Code != "VALIDATION_FAILED" {
			t.Errorf("%v: expected VALIDATION_FAILED, got %v", fields, err)
		}
	}
	if len(store.updates) != 0 {
		t.Fatalf("rejected updates reached the store: %v", store.updates)
	}

	if _, err := svc.Update(ctx, "admin", id.Hex(), map[string]any{
		"salary":    120000.0,
		"createdAt": "2024-03-01T09:30:00Z",
		"nickname":  "JD",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	set := store.updates[0]
	if set["salary"] != int64(120000) {
		t.Fatalf("expected salary coerced to int64, got %#v", set["salary"])
	}
	if _, ok := set["createdAt"].(primitive.DateTime); !ok {
		t.Fatalf("expected createdAt stored as a BSON date, got %#v", set["createdAt"])
	}
	if set["nickname"] != "JD" {
		t.Fatalf("expected undeclared field kept, got %#v", set["nickname"])
	}

	items, _, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	want := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	if items[0].Salary != 120000 || !items[0].CreatedAt.Equal(want) {
		t.Fatalf("unexpected listing %+v", items[0])
	}
}
