package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/nosql-mis/internal/persistence"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore issues and resolves login sessions.
type SessionStore interface {
	Create(ctx context.Context, username string) (string, error)
	Lookup(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore keeps sessions at session:<id> with the given TTL.
func NewRedisSessionStore(r *persistence.Redis, ttl time.Duration) SessionStore {
	var client *redis.Client
	if r != nil {
		client = r.Client
	}
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *redisSessionStore) Create(ctx context.Context, username string) (string, error) {
	if s.client == nil {
		return "", persistence.ErrRedisDisabled
	}
	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(id), username, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *redisSessionStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	if s.client == nil {
		return "", persistence.ErrRedisDisabled
	}
	if sessionID == "" {
		return "", ErrSessionNotFound
	}
	username, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return persistence.ErrRedisDisabled
	}
	if sessionID == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
