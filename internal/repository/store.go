package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nosql-mis/pkg/util/errorutil"
)

// Store is the persistence surface shared by every collection.
type Store[T any] interface {
	InsertMany(ctx context.Context, docs []T) ([]primitive.ObjectID, error)
	Create(ctx context.Context, doc *T) (primitive.ObjectID, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type documentStore[T any] struct {
	coll *mongo.Collection
}

func newDocumentStore[T any](db *mongo.Database, name string) documentStore[T] {
	return documentStore[T]{coll: db.Collection(name)}
}

func (s documentStore[T]) InsertMany(ctx context.Context, docs []T) ([]primitive.ObjectID, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	payload := make([]interface{}, 0, len(docs))
	for i := range docs {
		payload = append(payload, docs[i])
	}

	res, err := s.coll.InsertMany(ctx, payload)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, raw := range res.InsertedIDs {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected inserted id type %T", s.coll.Name(), raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s documentStore[T]) Create(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s: unexpected inserted id type %T", s.coll.Name(), res.InsertedID)
	}
	return id, nil
}

func (s documentStore[T]) List(ctx context.Context) ([]T, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	result := []T{}
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s documentStore[T]) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s documentStore[T]) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s documentStore[T]) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}

func (s documentStore[T]) findOne(ctx context.Context, resource string, filter bson.M) (*T, error) {
	var doc T
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		de := errorutil.NewNotFound(resource, map[string]any(filter)).(*errorutil.DomainError)
		de.Err = err
		return nil, de
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
