package history

import (
	"context"
	"os"
	"testing"

	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

func TestRedisBackendRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	b := NewRedisBackend(RedisOptions{Addr: addr, Key: "team-matches:test:" + t.Name()})
	t.Cleanup(func() {
		_ = b.Save(context.Background(), nil)
		_ = b.Close()
	})

	if err := b.Save(context.Background(), map[string]matches.HistoryEntry{"a": entry("a", now)}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || !got["a"].LastSeenAt.Equal(now) {
		t.Fatalf("unexpected round trip %+v", got)
	}
}

func TestRedisBackendName(t *testing.T) {
	b := NewRedisBackend(RedisOptions{Addr: "localhost:0", Key: "k"})
	defer b.Close()
	if b.Name() != "redis" {
		t.Fatalf("unexpected backend name %s", b.Name())
	}
}
