// Package testutil provides live MongoDB and Redis handles for integration tests.
// Tests that need them are skipped unless MONGO_TEST_URI / REDIS_TEST_ADDR are set.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/nosql-mis/internal/config"
	"github.com/spec-kit/nosql-mis/internal/persistence"
)

// MongoDatabase connects to MONGO_TEST_URI and returns a uniquely named
// database that is dropped when the test ends.
func MongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := fmt.Sprintf("nosql_mis_test_%d", time.Now().UnixNano())
	m, err := persistence.NewMongo(ctx, config.MongoConfig{URI: uri, Database: name, ConnectTimeoutSeconds: 5}, zap.NewNop())
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = m.DB.Drop(ctx)
		m.Close(ctx)
	})
	return m.DB
}

// Redis connects to REDIS_TEST_ADDR and flushes the selected DB around the test.
func Redis(t *testing.T) *persistence.Redis {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return &persistence.Redis{Client: client}
}
