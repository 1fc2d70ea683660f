package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/nosql-mis/internal/persistence"
	"github.com/spec-kit/nosql-mis/internal/testutil"
)

func TestCacheKey(t *testing.T) {
	if got := persistence.CacheKey("employees"); got != "employees_cache" {
		t.Fatalf("expected employees_cache, got %s", got)
	}
}

func TestListCacheDisabledAlwaysMisses(t *testing.T) {
	cache := persistence.NewListCache(&persistence.Redis{}, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "employees", []string{"a"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out []string
	hit, err := cache.Get(ctx, "employees", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := cache.Invalidate(ctx, "employees"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
}

func TestListCacheRoundTripAndInvalidate(t *testing.T) {
	r := testutil.Redis(t)
	cache := persistence.NewListCache(r, time.Minute)
	ctx := context.Background()

	type row struct {
		Name string `json:"name"`
	}
	if err := cache.Set(ctx, "projects", []row{{Name: "Website Redesign"}}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got []row
	hit, err := cache.Get(ctx, "projects", &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if len(got) != 1 || got[0].Name != "Website Redesign" {
		t.Fatalf("unexpected cached value %+v", got)
	}

	ttl, err := r.Client.TTL(ctx, "projects_cache").Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %s (%v)", ttl, err)
	}

	if err := cache.Invalidate(ctx, "projects", "tasks"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	hit, err = cache.Get(ctx, "projects", &got)
	if err != nil || hit {
		t.Fatalf("expected miss after invalidate, got hit=%v err=%v", hit, err)
	}
}
