package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nosql-mis/internal/auth"
	"github.com/spec-kit/nosql-mis/internal/domain"
)

type memStore[T any] struct {
	docs     []T
	updates  []bson.M
	patches  map[primitive.ObjectID]bson.M
	lists    int
	createEr error
}

func (m *memStore[T]) InsertMany(_ context.Context, docs []T) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, len(docs))
	for i := range docs {
		ids[i] = primitive.NewObjectID()
	}
	m.docs = append(m.docs, docs...)
	return ids, nil
}

func (m *memStore[T]) Create(_ context.Context, doc *T) (primitive.ObjectID, error) {
	if m.createEr != nil {
		return primitive.NilObjectID, m.createEr
	}
	m.docs = append(m.docs, *doc)
	return primitive.NewObjectID(), nil
}

// List decodes every stored document through BSON with its pending $set
// applied, so mistyped updates surface as decode errors like a real cursor.
func (m *memStore[T]) List(context.Context) ([]T, error) {
	m.lists++
	out := make([]T, 0, len(m.docs))
	for _, doc := range m.docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		var merged bson.M
		if err := bson.Unmarshal(raw, &merged); err != nil {
			return nil, err
		}
		if id, ok := merged["_id"].(primitive.ObjectID); ok {
			for k, v := range m.patches[id] {
				merged[k] = v
			}
		}
		if raw, err = bson.Marshal(merged); err != nil {
			return nil, err
		}
		var decoded T
		if err := bson.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

func (m *memStore[T]) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	m.updates = append(m.updates, fields)
	if m.patches == nil {
		m.patches = map[primitive.ObjectID]bson.M{}
	}
	if m.patches[id] == nil {
		m.patches[id] = bson.M{}
	}
	for k, v := range fields {
		m.patches[id][k] = v
	}
	return 1, nil
}

func (m *memStore[T]) Delete(context.Context, primitive.ObjectID) (int64, error) {
	return 1, nil
}

func (m *memStore[T]) Count(context.Context) (int64, error) {
	return int64(len(m.docs)), nil
}

type memCache struct {
	entries map[string][]byte
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, collection string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.entries[collection]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, collection string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[collection] = raw
	return nil
}

func (c *memCache) Invalidate(_ context.Context, collections ...string) error {
	for _, name := range collections {
		delete(c.entries, name)
	}
	return nil
}

type memUsers struct {
	memStore[domain.User]
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for i := range m.docs {
		if m.docs[i].Username == username {
			u := m.docs[i]
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type memSessions struct {
	sessions  map[string]string
	next      int
	deleteErr error
}

func (s *memSessions) Create(_ context.Context, username string) (string, error) {
	s.next++
	id := "session-" + string(rune('0'+s.next))
	s.sessions[id] = username
	return id, nil
}

func (s *memSessions) Lookup(_ context.Context, id string) (string, error) {
	u, ok := s.sessions[id]
	if !ok {
		return "", auth.ErrSessionNotFound
	}
	return u, nil
}

func (s *memSessions) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sessions, id)
	return nil
}

var errBoom = errors.New("boom")
