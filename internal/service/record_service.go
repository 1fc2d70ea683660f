package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/events"
	"github.com/spec-kit/nosql-mis/internal/persistence"
	"github.com/spec-kit/nosql-mis/internal/repository"
	"github.com/spec-kit/nosql-mis/pkg/util/errorutil"
)

// ListCache is the read-through cache used for collection listings.
type ListCache interface {
	Get(ctx context.Context, collection string, dst any) (bool, error)
	Set(ctx context.Context, collection string, value any) error
}

// RecordDependencies bundles collaborators shared by record services.
type RecordDependencies struct {
	Cache      ListCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// RecordService coordinates CRUD on one collection.
type RecordService[T any] struct {
	collection string
	store      repository.Store[T]
	cache      ListCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	prepare  func(doc *T, now time.Time) error
	idFields []string
}

func newRecordService[T any](collection string, store repository.Store[T], deps RecordDependencies) *RecordService[T] {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &RecordService[T]{
		collection: collection,
		store:      store,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger.With(zap.String("collection", collection)),
		now:        now,
	}
}

// NewEmployeeService builds the employee record service.
func NewEmployeeService(repo repository.EmployeeRepository, deps RecordDependencies) *RecordService[domain.Employee] {
	svc := newRecordService[domain.Employee](persistence.EmployeesCollection, repo, deps)
	svc.prepare = func(e *domain.Employee, now time.Time) error {
		if e.Name == "" || e.Email == "" {
			return errorutil.NewValidationError("name and email required", nil)
		}
		e.ID = primitive.NilObjectID
		e.CreatedAt = now
		return nil
	}
	return svc
}

// NewProjectService builds the project record service.
func NewProjectService(repo repository.ProjectRepository, deps RecordDependencies) *RecordService[domain.Project] {
	svc := newRecordService[domain.Project](persistence.ProjectsCollection, repo, deps)
	svc.prepare = func(p *domain.Project, now time.Time) error {
		if p.Name == "" {
			return errorutil.NewValidationError("name required", nil)
		}
		p.ID = primitive.NilObjectID
		p.CreatedAt = now
		return nil
	}
	return svc
}

// NewTaskService builds the task record service.
func NewTaskService(repo repository.TaskRepository, deps RecordDependencies) *RecordService[domain.Task] {
	svc := newRecordService[domain.Task](persistence.TasksCollection, repo, deps)
	svc.prepare = func(t *domain.Task, now time.Time) error {
		if t.Title == "" {
			return errorutil.NewValidationError("title required", nil)
		}
		t.ID = primitive.NilObjectID
		t.CreatedAt = now
		return nil
	}
	svc.idFields = []string{"projectId"}
	return svc
}

// List returns every record, serving from cache when possible.
func (s *RecordService[T]) List(ctx context.Context) ([]T, bool, error) {
	if s.cache != nil {
		var cached []T
		hit, err := s.cache.Get(ctx, s.collection, &cached)
		if err != nil {
			s.logger.Warn("cache read failed", zap.Error(err))
		} else if hit {
			return cached, true, nil
		}
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.collection, items); err != nil {
			s.logger.Warn("cache write failed", zap.Error(err))
		}
	}
	return items, false, nil
}

// Create inserts doc and returns its new id.
func (s *RecordService[T]) Create(ctx context.Context, actor string, doc *T) (primitive.ObjectID, error) {
	if s.prepare != nil {
		if err := s.prepare(doc, s.now().UTC()); err != nil {
			return primitive.NilObjectID, err
		}
	}
	id, err := s.store.Create(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, errorutil.MapError(err)
	}
	s.publish(ctx, actor, events.RecordsChangedPayload{Action: events.ActionCreated, RecordID: id.Hex()})
	return id, nil
}

// Update applies fields with $set and returns the modified count.
func (s *RecordService[T]) Update(ctx context.Context, actor, rawID string, fields map[string]any) (int64, error) {
	id, err := parseID(rawID)
	if err != nil {
		return 0, err
	}
	set, err := s.normalize(fields)
	if err != nil {
		return 0, err
	}

	modified, err := s.store.Update(ctx, id, set)
	if err != nil {
		return 0, errorutil.MapError(err)
	}
	s.publish(ctx, actor, events.RecordsChangedPayload{Action: events.ActionUpdated, RecordID: id.Hex(), Count: modified})
	return modified, nil
}

// Delete removes the record and returns the deleted count.
func (s *RecordService[T]) Delete(ctx context.Context, actor, rawID string) (int64, error) {
	id, err := parseID(rawID)
	if err != nil {
		return 0, err
	}
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, errorutil.MapError(err)
	}
	s.publish(ctx, actor, events.RecordsChangedPayload{Action: events.ActionDeleted, RecordID: id.Hex(), Count: deleted})
	return deleted, nil
}

func (s *RecordService[T]) normalize(fields map[string]any) (bson.M, error) {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		if k == "" || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			return nil, errorutil.NewValidationError("invalid field name", map[string]any{"field": k})
		}
		set[k] = v
	}
	for _, f := range s.idFields {
		raw, ok := set[f]
		if !ok {
			continue
		}
		str, isStr := raw.(string)
		if !isStr {
			return nil, errorutil.NewValidationError(f+" must be a hex id", map[string]any{"field": f})
		}
		oid, err := primitive.ObjectIDFromHex(str)
		if err != nil {
			return nil, errorutil.NewValidationError(f+" must be a hex id", map[string]any{"field": f, "value": str})
		}
		set[f] = oid
	}
	if len(set) == 0 {
		return nil, errorutil.NewValidationError("no fields to update", nil)
	}
	return conform[T](set)
}

// conform decodes set into T and replaces every field T declares with its
// typed value. A set that T cannot decode would break later listings.
func conform[T any](set bson.M) (bson.M, error) {
	raw, err := bson.Marshal(set)
	if err != nil {
		return nil, errorutil.NewValidationError("unsupported field value", map[string]any{"reason": err.Error()})
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errorutil.NewValidationError("field type mismatch", map[string]any{"reason": err.Error()})
	}

	typedRaw, err := bson.Marshal(&doc)
	if err != nil {
		return nil, err
	}
	var typed bson.M
	if err := bson.Unmarshal(typedRaw, &typed); err != nil {
		return nil, err
	}
	for k := range set {
		if v, ok := typed[k]; ok {
			set[k] = v
		}
	}
	return set, nil
}

func (s *RecordService[T]) publish(ctx context.Context, actor string, payload events.RecordsChangedPayload) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, events.NewRecordsChanged(s.collection, actor, payload)); err != nil {
		s.logger.Warn("change event handlers failed", zap.Error(err))
	}
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errorutil.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return id, nil
}
