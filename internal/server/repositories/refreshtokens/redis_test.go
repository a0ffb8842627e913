package refreshtokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/redis/go-redis/v9"
)

func newRedisRepoTest(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return NewRedisRepository(rdb, "notes:refresh", time.Hour), mr
}

func TestRedisCreateExistsDelete(t *testing.T) {
	repo, mr := newRedisRepoTest(t)
	ctx := context.Background()

	if err := repo.Create(ctx, "tok"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !mr.Exists("notes:refresh:tok") {
		t.Fatalf("expected prefixed key to be stored")
	}
	if ttl := mr.TTL("notes:refresh:tok"); ttl != time.Hour {
		t.Fatalf("ttl: got %v want %v", ttl, time.Hour)
	}

	ok, err := repo.Exists(ctx, "tok")
	if err != nil || !ok {
		t.Fatalf("exists: %v, %v", ok, err)
	}

	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	ok, err = repo.Exists(ctx, "tok")
	if err != nil || ok {
		t.Fatalf("exists after delete: %v, %v", ok, err)
	}
}

func TestRedisCreate_Duplicate(t *testing.T) {
	repo, _ := newRedisRepoTest(t)
	ctx := context.Background()

	if err := repo.Create(ctx, "tok"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, "tok"); !errors.Is(err, common.ErrorInvariant) {
		t.Fatalf("duplicate create: want common.ErrorInvariant, got %v", err)
	}
}

func TestRedisDelete_Absent(t *testing.T) {
	repo, _ := newRedisRepoTest(t)

	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestRedisExpiry(t *testing.T) {
	repo, mr := newRedisRepoTest(t)
	ctx := context.Background()

	if err := repo.Create(ctx, "tok"); err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(time.Hour + time.Second)

	ok, err := repo.Exists(ctx, "tok")
	if err != nil || ok {
		t.Fatalf("expired token still present: %v, %v", ok, err)
	}
}

func TestRedisUnavailable(t *testing.T) {
	repo, mr := newRedisRepoTest(t)
	mr.Close()

	ctx := context.Background()
	if err := repo.Create(ctx, "tok"); err == nil || common.IsClientError(err) {
		t.Fatalf("expected unclassified error, got %v", err)
	}
	if _, err := repo.Exists(ctx, "tok"); err == nil {
		t.Fatalf("expected error")
	}
	if err := repo.Delete(ctx, "tok"); err == nil || common.IsClientError(err) {
		t.Fatalf("expected unclassified error, got %v", err)
	}
}
